package rmcp

import "errors"

// パース・検証エラー
var (
	// ErrShortPacket はデータグラムがヘッダ長に満たない場合のエラー
	ErrShortPacket = errors.New("datagram shorter than rmcp+ header")

	// ErrBadRMCPHeader はRMCPバージョンまたはクラスが不正な場合のエラー
	ErrBadRMCPHeader = errors.New("invalid rmcp header")

	// ErrUnsupportedAuthType はAuthType/FormatがRMCP+以外の場合のエラー
	ErrUnsupportedAuthType = errors.New("unsupported auth type")

	// ErrLengthMismatch はペイロード長フィールドと実データ長が矛盾する場合のエラー
	ErrLengthMismatch = errors.New("payload length field mismatch")

	// ErrBadTrailer はIntegrityトレーラ（パッド/Next Header）が不正な場合のエラー
	ErrBadTrailer = errors.New("malformed integrity trailer")

	// ErrNoIntegrity は認証付きパケットに対しアルゴリズム未指定の場合のエラー
	ErrNoIntegrity = errors.New("integrity algorithm required for authenticated packet")

	// ErrBadPayload はRMCP+ペイロードの形式が不正な場合のエラー
	ErrBadPayload = errors.New("malformed rmcp+ payload")
)
