package integrity

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"testing"
)

// newTestAlgo はテスト用のHMAC-SHA1-96インスタンスを生成する
func newTestAlgo(t *testing.T) *Integrity {
	t.Helper()
	sik := bytes.Repeat([]byte{0xAA}, 20)
	algo, err := New(AlgorithmHMACSHA1_96, sik)
	if err != nil {
		t.Fatalf("New失敗: %v", err)
	}
	return algo
}

func TestNew_AuthCodeLength(t *testing.T) {
	sik := bytes.Repeat([]byte{0xAA}, 20)

	tests := []struct {
		alg  Algorithm
		want int
	}{
		{AlgorithmNone, 0},
		{AlgorithmHMACSHA1_96, 12},
		{AlgorithmHMACSHA256_128, 16},
	}
	for _, tt := range tests {
		algo, err := New(tt.alg, sik)
		if err != nil {
			t.Fatalf("New(%v)失敗: %v", tt.alg, err)
		}
		if got := algo.AuthCodeLength(); got != tt.want {
			t.Errorf("%v: AuthCodeLength = %d, want %d", tt.alg, got, tt.want)
		}
	}
}

func TestNew_Unsupported(t *testing.T) {
	sik := bytes.Repeat([]byte{0xAA}, 20)

	for _, alg := range []Algorithm{AlgorithmHMACMD5_128, AlgorithmMD5_128, Algorithm(0xFF)} {
		if _, err := New(alg, sik); err != ErrAlgorithmUnsupported {
			t.Errorf("New(%v): err = %v, want ErrAlgorithmUnsupported", alg, err)
		}
	}
}

func TestNew_EmptySIK(t *testing.T) {
	if _, err := New(AlgorithmHMACSHA1_96, nil); err != ErrEmptySIK {
		t.Errorf("err = %v, want ErrEmptySIK", err)
	}

	// Noneは鍵導出を行わないためSIK不要
	if _, err := New(AlgorithmNone, nil); err != nil {
		t.Errorf("None構築でエラー: %v", err)
	}
}

func TestGenerate_Truncation(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("0123456789abcdef")

	code, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	if len(code) != SHA1_96AuthCodeLength {
		t.Fatalf("AuthCode長が不正: got=%d, want=%d", len(code), SHA1_96AuthCodeLength)
	}

	// 独立に計算したHMAC-SHA1全体ダイジェストの先頭12バイトと一致すること
	mac := hmac.New(sha1.New, algo.k1)
	mac.Write(packet)
	full := mac.Sum(nil)
	if !bytes.Equal(code, full[:12]) {
		t.Errorf("切り詰め結果が不一致: got=%x, want=%x", code, full[:12])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("deterministic-check")

	first, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	for i := 0; i < 10; i++ {
		code, err := algo.Generate(packet, len(packet))
		if err != nil {
			t.Fatalf("Generate失敗（%d回目）: %v", i, err)
		}
		if !bytes.Equal(code, first) {
			t.Fatalf("結果が非決定的: %x != %x", code, first)
		}
	}
}

func TestGenerate_SignedLengthBounds(t *testing.T) {
	algo := newTestAlgo(t)
	packet := make([]byte, 16)

	if _, err := algo.Generate(packet, len(packet)+1); err != ErrSignedLength {
		t.Errorf("範囲超過: err = %v, want ErrSignedLength", err)
	}
	if _, err := algo.Generate(packet, -1); err != ErrSignedLength {
		t.Errorf("負値: err = %v, want ErrSignedLength", err)
	}
	if _, err := algo.Verify(packet, len(packet)+1, make([]byte, 12)); err != ErrSignedLength {
		t.Errorf("Verify範囲超過: err = %v, want ErrSignedLength", err)
	}
}

func TestGenerate_IgnoresTrailingBytes(t *testing.T) {
	algo := newTestAlgo(t)

	// signedLen以降のバイト（AuthCodeフィールド領域）は結果に影響しない
	signed := []byte("signed-region")
	a := append(append([]byte{}, signed...), 0x00, 0x00, 0x00, 0x00)
	b := append(append([]byte{}, signed...), 0xFF, 0xEE, 0xDD, 0xCC)

	codeA, err := algo.Generate(a, len(signed))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	codeB, err := algo.Generate(b, len(signed))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	if !bytes.Equal(codeA, codeB) {
		t.Errorf("末尾バイトが結果に影響: %x != %x", codeA, codeB)
	}
}

func TestGenerate_BitFlipSensitivity(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("sample-message")

	base, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}

	// 各バイト位置で1ビット反転させ、AuthCodeが変化すること
	for i := range packet {
		flipped := append([]byte{}, packet...)
		flipped[i] ^= 0x01

		code, err := algo.Generate(flipped, len(flipped))
		if err != nil {
			t.Fatalf("Generate失敗（位置%d）: %v", i, err)
		}
		if bytes.Equal(code, base) {
			t.Errorf("位置%dのビット反転でAuthCodeが変化しない", i)
		}
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("round-trip-packet-body")

	for signedLen := 0; signedLen <= len(packet); signedLen++ {
		code, err := algo.Generate(packet, signedLen)
		if err != nil {
			t.Fatalf("Generate失敗（signedLen=%d）: %v", signedLen, err)
		}
		ok, err := algo.Verify(packet, signedLen, code)
		if err != nil {
			t.Fatalf("Verify失敗（signedLen=%d）: %v", signedLen, err)
		}
		if !ok {
			t.Errorf("ラウンドトリップ検証失敗（signedLen=%d）", signedLen)
		}
	}
}

func TestVerify_Mismatch(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("mismatch-check")

	code, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}

	// 各バイトを1ずつ変えるとfalseになること
	for i := range code {
		bad := append([]byte{}, code...)
		bad[i]++
		ok, err := algo.Verify(packet, len(packet), bad)
		if err != nil {
			t.Fatalf("Verify失敗: %v", err)
		}
		if ok {
			t.Errorf("改竄AuthCode（位置%d）を受理", i)
		}
	}
}

func TestVerify_WrongLength(t *testing.T) {
	algo := newTestAlgo(t)
	packet := []byte("length-check")

	code, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}

	// 長さ不一致はエラーではなく不一致（false）
	for _, offered := range [][]byte{nil, {}, code[:11], append(append([]byte{}, code...), 0x00)} {
		ok, err := algo.Verify(packet, len(packet), offered)
		if err != nil {
			t.Fatalf("Verify失敗: %v", err)
		}
		if ok {
			t.Errorf("長さ%dのAuthCodeを受理", len(offered))
		}
	}
}

func TestVerify_None(t *testing.T) {
	algo, err := New(AlgorithmNone, nil)
	if err != nil {
		t.Fatalf("New失敗: %v", err)
	}

	code, err := algo.Generate([]byte("anything"), 8)
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	if len(code) != 0 {
		t.Errorf("NoneのAuthCode長 = %d, want 0", len(code))
	}

	ok, err := algo.Verify([]byte("anything"), 8, nil)
	if err != nil {
		t.Fatalf("Verify失敗: %v", err)
	}
	if !ok {
		t.Error("NoneのVerifyがfalse")
	}
}

func TestEndToEnd_SHA1Vector(t *testing.T) {
	// SIK=0x00×20, 署名対象="test-packet", AuthCode長=12
	sik := make([]byte, 20)
	packet := []byte("test-packet")

	algo, err := New(AlgorithmHMACSHA1_96, sik)
	if err != nil {
		t.Fatalf("New失敗: %v", err)
	}

	// K1 = HMAC-SHA1(key=SIK, msg=0x01×20) を独立に計算
	kd := hmac.New(sha1.New, sik)
	kd.Write(bytes.Repeat([]byte{0x01}, 20))
	k1 := kd.Sum(nil)

	// AuthCode = HMAC-SHA1(key=K1, msg="test-packet") の先頭12バイト
	mac := hmac.New(sha1.New, k1)
	mac.Write(packet)
	want := mac.Sum(nil)[:12]

	code, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	if !bytes.Equal(code, want) {
		t.Errorf("AuthCodeが参照計算と不一致: got=%x, want=%x", code, want)
	}

	ok, err := algo.Verify(packet, len(packet), want)
	if err != nil || !ok {
		t.Errorf("正しいAuthCodeの検証失敗: ok=%v, err=%v", ok, err)
	}

	bad := append([]byte{}, want...)
	bad[0]++
	ok, err = algo.Verify(packet, len(packet), bad)
	if err != nil {
		t.Fatalf("Verify失敗: %v", err)
	}
	if ok {
		t.Error("改竄AuthCodeを受理")
	}
}

func TestSHA256Variant(t *testing.T) {
	sik := bytes.Repeat([]byte{0x5A}, 32)
	algo, err := New(AlgorithmHMACSHA256_128, sik)
	if err != nil {
		t.Fatalf("New失敗: %v", err)
	}

	packet := []byte("sha256-variant-packet")
	code, err := algo.Generate(packet, len(packet))
	if err != nil {
		t.Fatalf("Generate失敗: %v", err)
	}
	if len(code) != SHA256_128AuthCodeLength {
		t.Fatalf("AuthCode長 = %d, want %d", len(code), SHA256_128AuthCodeLength)
	}

	// K1・AuthCodeともSHA-256系で計算されること
	kd := hmac.New(sha256.New, sik)
	kd.Write(bytes.Repeat([]byte{0x01}, 20))
	k1 := kd.Sum(nil)
	mac := hmac.New(sha256.New, k1)
	mac.Write(packet)
	if want := mac.Sum(nil)[:16]; !bytes.Equal(code, want) {
		t.Errorf("AuthCodeが参照計算と不一致: got=%x, want=%x", code, want)
	}
}

func TestWipe(t *testing.T) {
	algo := newTestAlgo(t)
	algo.Wipe()

	for i, b := range algo.k1 {
		if b != 0 {
			t.Fatalf("Wipe後にK1[%d] = %#x", i, b)
		}
	}
}
