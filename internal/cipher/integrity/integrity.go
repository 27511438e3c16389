// Package integrity はIPMI v2.0/RMCP+のIntegrityアルゴリズムを実装する。
// 確立済みセッションの認証付きパケットに付与されるAuthCodeフィールドの
// 生成と検証、およびSIKからの署名鍵K1の導出を担う。
// 対象範囲はAuthType/Formatフィールドから
// AuthCodeフィールド直前のフィールドまでのパケットデータである。
package integrity

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"hash"
)

// Algorithm はIntegrityアルゴリズム番号を表す（IPMI v2.0 Table 13-18）。
// Noneの場合、AuthCodeは計算されずパケットにAuthCodeフィールドは存在しない。
type Algorithm uint8

const (
	AlgorithmNone           Algorithm = 0x00 // 必須
	AlgorithmHMACSHA1_96    Algorithm = 0x01 // 必須
	AlgorithmHMACMD5_128    Algorithm = 0x02 // オプション（未実装）
	AlgorithmMD5_128        Algorithm = 0x03 // オプション（未実装）
	AlgorithmHMACSHA256_128 Algorithm = 0x04 // オプション
)

// AuthCode長（バイト）
const (
	SHA1_96AuthCodeLength    = 12
	SHA256_128AuthCodeLength = 16
)

// String はアルゴリズム名を返す
func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmHMACSHA1_96:
		return "hmac-sha1-96"
	case AlgorithmHMACMD5_128:
		return "hmac-md5-128"
	case AlgorithmMD5_128:
		return "md5-128"
	case AlgorithmHMACSHA256_128:
		return "hmac-sha256-128"
	default:
		return "unknown"
	}
}

// Supported は本実装で構築可能なアルゴリズムかどうかを返す
func (a Algorithm) Supported() bool {
	switch a {
	case AlgorithmNone, AlgorithmHMACSHA1_96, AlgorithmHMACSHA256_128:
		return true
	default:
		return false
	}
}

// Integrity は1セッション分のIntegrityアルゴリズム状態を保持する。
// K1は構築時に一度だけ導出され、以後不変。可変状態を持たないため、
// 同一セッションの複数パケットを並行処理する際も排他制御なしで共有できる。
type Integrity struct {
	alg         Algorithm
	k1          []byte
	authCodeLen int
	newHash     func() hash.Hash
}

// New は指定アルゴリズムのIntegrityインスタンスを構築する。
// SIKからK1を導出して保持する（SIKはコピーされず、導出後は参照されない）。
// AlgorithmNoneの場合はsikを参照しないためnilでもよい。
// sikが空の場合はErrEmptySIK、MD5系アルゴリズムはErrAlgorithmUnsupportedを返す。
func New(alg Algorithm, sik []byte) (*Integrity, error) {
	switch alg {
	case AlgorithmNone:
		return &Integrity{alg: alg}, nil

	case AlgorithmHMACSHA1_96:
		return newHMAC(alg, sik, sha1.New, SHA1_96AuthCodeLength)

	case AlgorithmHMACSHA256_128:
		return newHMAC(alg, sik, sha256.New, SHA256_128AuthCodeLength)

	default:
		return nil, ErrAlgorithmUnsupported
	}
}

// newHMAC はHMAC系アルゴリズムのインスタンスを構築する
func newHMAC(alg Algorithm, sik []byte, newHash func() hash.Hash, authCodeLen int) (*Integrity, error) {
	if authCodeLen > newHash().Size() {
		return nil, ErrAuthCodeLength
	}
	k1, err := DeriveKey(newHash, sik, const1)
	if err != nil {
		return nil, err
	}
	return &Integrity{
		alg:         alg,
		k1:          k1,
		authCodeLen: authCodeLen,
		newHash:     newHash,
	}, nil
}

// Algorithm はアルゴリズム番号を返す
func (i *Integrity) Algorithm() Algorithm {
	return i.alg
}

// AuthCodeLength はAuthCodeフィールドの長さ（バイト）を返す。
// フレーミング層のバッファサイズ決定に使用する。Noneの場合は0。
func (i *Integrity) AuthCodeLength() int {
	return i.authCodeLen
}

// Generate は送信パケットのAuthCodeを生成する。
// packet[0:signedLen]（AuthType/FormatフィールドからAuthCode直前まで）を
// K1鍵のHMACで処理し、先頭authCodeLenバイトに切り詰めて返す。
// signedLenはAuthCodeフィールド自体を含んではならない。
// signedLenが範囲外の場合はErrSignedLengthを返す（境界外読み出しはしない）。
func (i *Integrity) Generate(packet []byte, signedLen int) ([]byte, error) {
	if signedLen < 0 || signedLen > len(packet) {
		return nil, ErrSignedLength
	}
	if i.alg == AlgorithmNone {
		return []byte{}, nil
	}
	mac := hmac.New(i.newHash, i.k1)
	mac.Write(packet[:signedLen])
	return mac.Sum(nil)[:i.authCodeLen], nil
}

// Verify は受信パケットのAuthCodeを検証する。
// packet[0:signedLen]からAuthCodeを再計算し、offeredと定数時間比較する。
// 一致すればtrue。長さ不一致は単なる不一致としてfalseを返す（エラーではない）。
// AlgorithmNoneの場合は常にtrue。
func (i *Integrity) Verify(packet []byte, signedLen int, offered []byte) (bool, error) {
	if signedLen < 0 || signedLen > len(packet) {
		return false, ErrSignedLength
	}
	if i.alg == AlgorithmNone {
		return true, nil
	}
	expected, err := i.Generate(packet, signedLen)
	if err != nil {
		return false, err
	}
	// hmac.Equalは内部でsubtle.ConstantTimeCompareを使用する
	return hmac.Equal(expected, offered), nil
}

// Wipe はK1をゼロ化する。セッション破棄時に呼び出す。
// 呼び出し後のGenerate/Verifyの結果は未定義。
func (i *Integrity) Wipe() {
	for j := range i.k1 {
		i.k1[j] = 0
	}
}
