package engine

// IPMI LANメッセージの最小実装。
// セッション確立後のIPMIペイロード（Get Device ID / Close Session）に応答する。

// Network Function / コマンド
const (
	netFnApp = 0x06

	cmdGetDeviceID  = 0x01
	cmdCloseSession = 0x3C
)

// Completion Code
const (
	completionOK         = 0x00
	completionInvalidCmd = 0xC1
)

// IPMIメッセージのアドレス
const (
	addrBMC           = 0x20
	ipmiMinRequestLen = 7 // rsAddr, netFn/LUN, cksum1, rqAddr, rqSeq/LUN, cmd, cksum2
)

// checksum はIPMIの2の補数チェックサムを計算する（フィールド合計が0になる値）
func checksum(data ...byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return -sum
}

// ipmiRequest はパース済みのIPMI LANリクエストを表す
type ipmiRequest struct {
	netFn  uint8
	rqAddr uint8
	rqSeq  uint8
	cmd    uint8
	data   []byte
}

// parseIPMIRequest はIPMI LANメッセージをパースする。
// チェックサム不一致・長さ不足はnilを返す（呼び出し側で破棄）。
func parseIPMIRequest(p []byte) *ipmiRequest {
	if len(p) < ipmiMinRequestLen {
		return nil
	}
	if checksum(p[0], p[1]) != p[2] {
		return nil
	}
	if checksum(p[3:len(p)-1]...) != p[len(p)-1] {
		return nil
	}
	return &ipmiRequest{
		netFn:  p[1] >> 2,
		rqAddr: p[3],
		rqSeq:  p[4] >> 2,
		cmd:    p[5],
		data:   p[6 : len(p)-1],
	}
}

// buildIPMIResponse はIPMI LAN応答メッセージを組み立てる。
// Network Functionは応答側（+1）、アドレスはリクエストの逆向き。
func buildIPMIResponse(req *ipmiRequest, completion uint8, data []byte) []byte {
	netFn := (req.netFn | 0x01) << 2
	buf := make([]byte, 0, 8+len(data))
	buf = append(buf, req.rqAddr, netFn, checksum(req.rqAddr, netFn))
	buf = append(buf, addrBMC, req.rqSeq<<2, req.cmd, completion)
	buf = append(buf, data...)
	return append(buf, checksum(buf[3:]...))
}

// deviceIDResponse はGet Device IDの応答データ（IPMI v2.0 Section 20.1）
var deviceIDResponse = []byte{
	0x00,             // Device ID
	0x00,             // Device Revision
	0x01, 0x00,       // Firmware Revision 1.0
	0x02,             // IPMI Version 2.0
	0x00,             // Additional Device Support
	0x00, 0x00, 0x00, // Manufacturer ID
	0x00, 0x00, // Product ID
}
