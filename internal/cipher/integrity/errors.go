package integrity

import "errors"

// 構築時エラー
var (
	// ErrEmptySIK はSIKが空の場合のエラー
	ErrEmptySIK = errors.New("session integrity key is empty")

	// ErrAlgorithmUnsupported は未実装のIntegrityアルゴリズムが指定された場合のエラー
	ErrAlgorithmUnsupported = errors.New("integrity algorithm not supported")

	// ErrAuthCodeLength はAuthCode長がハッシュダイジェスト長を超える場合のエラー
	ErrAuthCodeLength = errors.New("authcode length exceeds digest size")

	// ErrKeySlot は鍵スロット番号が0の場合のエラー（有効範囲は1〜255）
	ErrKeySlot = errors.New("key slot out of range")
)

// 呼び出し契約違反エラー
var (
	// ErrSignedLength はsignedLenがパケット長を超える（または負の）場合のエラー
	ErrSignedLength = errors.New("signed length out of packet bounds")
)
