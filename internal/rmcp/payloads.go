package rmcp

import "encoding/binary"

// RandomLength はRAKPメッセージの乱数フィールド長
const RandomLength = 16

// GUIDLength はManaged System GUIDのフィールド長
const GUIDLength = 16

// OpenSessionRequest はRMCP+ Open Session Requestペイロードを表す
// （IPMI v2.0 Table 13-9）。
type OpenSessionRequest struct {
	MessageTag   uint8
	MaxPrivilege uint8
	SessionIDRC  uint32 // リモートコンソール側セッションID
	AuthAlg      uint8
	IntegAlg     uint8
	ConfAlg      uint8
}

// parseAlgorithmRecord はアルゴリズム提案レコード（8バイト）を検証し、
// アルゴリズム番号を返す
func parseAlgorithmRecord(rec []byte, payloadType uint8) (uint8, error) {
	if rec[0] != payloadType || rec[3] != 0x08 {
		return 0, ErrBadPayload
	}
	return rec[4] & 0x3F, nil
}

// ParseOpenSessionRequest はOpen Session Requestペイロードをパースする
func ParseOpenSessionRequest(p []byte) (*OpenSessionRequest, error) {
	if len(p) < 32 {
		return nil, ErrBadPayload
	}

	req := &OpenSessionRequest{
		MessageTag:   p[0],
		MaxPrivilege: p[1] & 0x0F,
		SessionIDRC:  binary.LittleEndian.Uint32(p[4:8]),
	}

	var err error
	if req.AuthAlg, err = parseAlgorithmRecord(p[8:16], 0x00); err != nil {
		return nil, err
	}
	if req.IntegAlg, err = parseAlgorithmRecord(p[16:24], 0x01); err != nil {
		return nil, err
	}
	if req.ConfAlg, err = parseAlgorithmRecord(p[24:32], 0x02); err != nil {
		return nil, err
	}
	return req, nil
}

// buildAlgorithmRecord はアルゴリズムレコード（8バイト）を組み立てる
func buildAlgorithmRecord(buf []byte, payloadType, alg uint8) []byte {
	return append(buf, payloadType, 0x00, 0x00, 0x08, alg, 0x00, 0x00, 0x00)
}

// BuildOpenSessionResponse はOpen Session Responseペイロードを組み立てる
// （IPMI v2.0 Table 13-10）。
func BuildOpenSessionResponse(tag, status, maxPriv uint8, sidRC, sidMS uint32, authAlg, integAlg, confAlg uint8) []byte {
	buf := make([]byte, 0, 36)
	buf = append(buf, tag, status, maxPriv, 0x00)
	buf = binary.LittleEndian.AppendUint32(buf, sidRC)

	// エラー応答はBMC側セッションID以降を含まない
	if status != StatusNoErrors {
		return buf
	}

	buf = binary.LittleEndian.AppendUint32(buf, sidMS)
	buf = buildAlgorithmRecord(buf, 0x00, authAlg)
	buf = buildAlgorithmRecord(buf, 0x01, integAlg)
	buf = buildAlgorithmRecord(buf, 0x02, confAlg)
	return buf
}

// RAKPMessage1 はRAKP Message 1ペイロードを表す（IPMI v2.0 Table 13-11）
type RAKPMessage1 struct {
	MessageTag   uint8
	SessionIDMS  uint32 // BMC側セッションID
	RandRC       []byte // リモートコンソール乱数（16バイト）
	MaxPrivilege uint8
	Username     string
}

// ParseRAKPMessage1 はRAKP Message 1ペイロードをパースする
func ParseRAKPMessage1(p []byte) (*RAKPMessage1, error) {
	if len(p) < 28 {
		return nil, ErrBadPayload
	}
	nameLen := int(p[27])
	if nameLen > 16 || len(p) < 28+nameLen {
		return nil, ErrBadPayload
	}

	return &RAKPMessage1{
		MessageTag:   p[0],
		SessionIDMS:  binary.LittleEndian.Uint32(p[4:8]),
		RandRC:       p[8:24],
		MaxPrivilege: p[24] & 0x0F,
		Username:     string(p[28 : 28+nameLen]),
	}, nil
}

// BuildRAKPMessage2 はRAKP Message 2ペイロードを組み立てる
// （IPMI v2.0 Table 13-12）。エラー応答は乱数以降を含まない。
func BuildRAKPMessage2(tag, status uint8, sidRC uint32, randMS, guidMS, authCode []byte) []byte {
	buf := make([]byte, 0, 8+RandomLength+GUIDLength+len(authCode))
	buf = append(buf, tag, status, 0x00, 0x00)
	buf = binary.LittleEndian.AppendUint32(buf, sidRC)

	if status != StatusNoErrors {
		return buf
	}

	buf = append(buf, randMS...)
	buf = append(buf, guidMS...)
	return append(buf, authCode...)
}

// RAKPMessage3 はRAKP Message 3ペイロードを表す（IPMI v2.0 Table 13-13）
type RAKPMessage3 struct {
	MessageTag  uint8
	Status      uint8
	SessionIDMS uint32
	AuthCode    []byte
}

// ParseRAKPMessage3 はRAKP Message 3ペイロードをパースする
func ParseRAKPMessage3(p []byte) (*RAKPMessage3, error) {
	if len(p) < 8 {
		return nil, ErrBadPayload
	}
	return &RAKPMessage3{
		MessageTag:  p[0],
		Status:      p[1],
		SessionIDMS: binary.LittleEndian.Uint32(p[4:8]),
		AuthCode:    p[8:],
	}, nil
}

// BuildRAKPMessage4 はRAKP Message 4ペイロードを組み立てる
// （IPMI v2.0 Table 13-14）。エラー応答はICVを含まない。
func BuildRAKPMessage4(tag, status uint8, sidRC uint32, icv []byte) []byte {
	buf := make([]byte, 0, 8+len(icv))
	buf = append(buf, tag, status, 0x00, 0x00)
	buf = binary.LittleEndian.AppendUint32(buf, sidRC)

	if status != StatusNoErrors {
		return buf
	}
	return append(buf, icv...)
}
