package rmcp

// RMCPヘッダ定数
const (
	Version       = 0x06 // RMCP version 1.0
	SequenceNoAck = 0xFF // RMCP ACK不要
	ClassIPMI     = 0x07
)

// Auth Type / Format
const (
	AuthTypeNone     = 0x00
	AuthTypeRMCPPlus = 0x06 // IPMI v2.0 RMCP+
)

// RMCP+ペイロード種別（IPMI v2.0 Table 13-16）
const (
	PayloadTypeIPMI                = 0x00
	PayloadTypeSOL                 = 0x01
	PayloadTypeOpenSessionRequest  = 0x10
	PayloadTypeOpenSessionResponse = 0x11
	PayloadTypeRAKPMessage1        = 0x12
	PayloadTypeRAKPMessage2        = 0x13
	PayloadTypeRAKPMessage3        = 0x14
	PayloadTypeRAKPMessage4        = 0x15
)

// RMCP+ステータスコード（IPMI v2.0 Table 13-15）
const (
	StatusNoErrors              = 0x00
	StatusInsufficientResources = 0x01
	StatusInvalidSessionID      = 0x02
	StatusInvalidPayloadType    = 0x03
	StatusInvalidAuthAlgorithm  = 0x04
	StatusInvalidIntegAlgorithm = 0x05
	StatusUnauthorizedRole      = 0x09
	StatusUnauthorizedName      = 0x0D
	StatusInvalidICV            = 0x0F
	StatusIllegalParameter      = 0x12
)

// 認証アルゴリズム番号（IPMI v2.0 Table 13-17）
const (
	AuthAlgorithmRAKPNone       = 0x00
	AuthAlgorithmRAKPHMACSHA1   = 0x01
	AuthAlgorithmRAKPHMACMD5    = 0x02
	AuthAlgorithmRAKPHMACSHA256 = 0x03
)

// ヘッダ長
const (
	rmcpHeaderLength    = 4  // Version, Reserved, Sequence, Class
	sessionHeaderLength = 12 // AuthType, PayloadType, SessionID, Sequence, Length
	HeaderLength        = rmcpHeaderLength + sessionHeaderLength
)

// trailerNextHeader はIntegrityトレーラのNext Headerフィールド値
const trailerNextHeader = 0x07
