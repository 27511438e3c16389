package rakp

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"testing"
)

// テスト用の固定値
var (
	testKuid   = []byte("password")
	testRandRC = make([]byte, 16)
	testRandMS = make([]byte, 16)
	testGUID   = make([]byte, 16)
)

func init() {
	for i := range testRandRC {
		testRandRC[i] = byte(i + 1)
		testRandMS[i] = byte(i + 0x20)
		testGUID[i] = byte(i + 0x40)
	}
}

func TestComputeSIK(t *testing.T) {
	sik := ComputeSIK(testKuid, testRandRC, testRandMS, 0x04, "admin")
	if len(sik) != sha1.Size {
		t.Fatalf("SIK長 = %d, want %d", len(sik), sha1.Size)
	}

	// 独立に構築した連結バッファで再計算して一致すること
	var buf bytes.Buffer
	buf.Write(testRandRC)
	buf.Write(testRandMS)
	buf.WriteByte(0x04)
	buf.WriteByte(5)
	buf.WriteString("admin")

	mac := hmac.New(sha1.New, testKuid)
	mac.Write(buf.Bytes())
	if want := mac.Sum(nil); !bytes.Equal(sik, want) {
		t.Errorf("SIKが不一致: got=%x, want=%x", sik, want)
	}
}

func TestMessage2AuthCode(t *testing.T) {
	code := Message2AuthCode(testKuid, 0x12345678, 0xAABBCCDD, testRandRC, testRandMS, testGUID, 0x04, "admin")
	if len(code) != sha1.Size {
		t.Fatalf("認証コード長 = %d, want %d", len(code), sha1.Size)
	}

	var buf bytes.Buffer
	var sid [4]byte
	binary.LittleEndian.PutUint32(sid[:], 0x12345678)
	buf.Write(sid[:])
	binary.LittleEndian.PutUint32(sid[:], 0xAABBCCDD)
	buf.Write(sid[:])
	buf.Write(testRandRC)
	buf.Write(testRandMS)
	buf.Write(testGUID)
	buf.WriteByte(0x04)
	buf.WriteByte(5)
	buf.WriteString("admin")

	mac := hmac.New(sha1.New, testKuid)
	mac.Write(buf.Bytes())
	if want := mac.Sum(nil); !bytes.Equal(code, want) {
		t.Errorf("RAKP2認証コードが不一致: got=%x, want=%x", code, want)
	}
}

func TestVerifyMessage3(t *testing.T) {
	code := Message3AuthCode(testKuid, testRandMS, 0x12345678, 0x04, "admin")

	if !VerifyMessage3(testKuid, testRandMS, 0x12345678, 0x04, "admin", code) {
		t.Error("正しいRAKP3認証コードを拒否")
	}

	// 鍵違い（パスワード違い）は拒否
	if VerifyMessage3([]byte("wrong-password"), testRandMS, 0x12345678, 0x04, "admin", code) {
		t.Error("誤った鍵のRAKP3認証コードを受理")
	}

	// 改竄
	bad := append([]byte{}, code...)
	bad[0] ^= 0xFF
	if VerifyMessage3(testKuid, testRandMS, 0x12345678, 0x04, "admin", bad) {
		t.Error("改竄されたRAKP3認証コードを受理")
	}
}

func TestMessage4ICV(t *testing.T) {
	sik := ComputeSIK(testKuid, testRandRC, testRandMS, 0x04, "admin")
	icv := Message4ICV(sik, testRandRC, 0xAABBCCDD, testGUID)

	if len(icv) != ICVLength {
		t.Fatalf("ICV長 = %d, want %d", len(icv), ICVLength)
	}

	// 先頭12バイトへの切り詰めであること
	var buf bytes.Buffer
	buf.Write(testRandRC)
	var sid [4]byte
	binary.LittleEndian.PutUint32(sid[:], 0xAABBCCDD)
	buf.Write(sid[:])
	buf.Write(testGUID)

	mac := hmac.New(sha1.New, sik)
	mac.Write(buf.Bytes())
	if want := mac.Sum(nil)[:ICVLength]; !bytes.Equal(icv, want) {
		t.Errorf("ICVが不一致: got=%x, want=%x", icv, want)
	}
}
