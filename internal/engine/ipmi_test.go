package engine

import (
	"bytes"
	"testing"
)

func TestChecksum(t *testing.T) {
	// 全フィールドとチェックサムの合計が0になること
	fields := []byte{0x20, 0x18, 0x81, 0x04, 0x01}
	sum := checksum(fields...)
	var total byte
	for _, b := range fields {
		total += b
	}
	if total+sum != 0 {
		t.Errorf("checksum = %#x, 合計が0にならない", sum)
	}
}

func TestParseIPMIRequest(t *testing.T) {
	p := buildIPMIPayload(netFnApp, cmdGetDeviceID, nil)

	req := parseIPMIRequest(p)
	if req == nil {
		t.Fatal("正常メッセージのパース失敗")
	}
	if req.netFn != netFnApp {
		t.Errorf("netFn = %#x, want %#x", req.netFn, netFnApp)
	}
	if req.cmd != cmdGetDeviceID {
		t.Errorf("cmd = %#x, want %#x", req.cmd, cmdGetDeviceID)
	}
	if len(req.data) != 0 {
		t.Errorf("data長 = %d, want 0", len(req.data))
	}
}

func TestParseIPMIRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		p    []byte
	}{
		{"短すぎる", []byte{0x20, 0x18}},
		{"ヘッダチェックサム不正", func() []byte {
			p := buildIPMIPayload(netFnApp, cmdGetDeviceID, nil)
			p[2] ^= 0xFF
			return p
		}()},
		{"本体チェックサム不正", func() []byte {
			p := buildIPMIPayload(netFnApp, cmdGetDeviceID, nil)
			p[len(p)-1] ^= 0xFF
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if parseIPMIRequest(tt.p) != nil {
				t.Error("不正メッセージがパースされた")
			}
		})
	}
}

func TestBuildIPMIResponse(t *testing.T) {
	req := parseIPMIRequest(buildIPMIPayload(netFnApp, cmdGetDeviceID, nil))
	if req == nil {
		t.Fatal("リクエストのパース失敗")
	}

	resp := buildIPMIResponse(req, completionOK, deviceIDResponse)

	// 応答は自身もチェックサムが整合していること
	parsed := parseIPMIRequest(resp)
	if parsed == nil {
		t.Fatal("応答のチェックサムが不整合")
	}
	// Network Functionは応答側（奇数）
	if parsed.netFn != netFnApp|0x01 {
		t.Errorf("応答netFn = %#x, want %#x", parsed.netFn, netFnApp|0x01)
	}
	if resp[6] != completionOK {
		t.Errorf("completion = %#x, want %#x", resp[6], completionOK)
	}
	if !bytes.Equal(resp[7:len(resp)-1], deviceIDResponse) {
		t.Error("応答データが一致しない")
	}
}
