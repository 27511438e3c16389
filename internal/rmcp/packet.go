// Package rmcp はRMCP/RMCP+セッションパケットのエンコード・デコードを実装する。
// Integrityアルゴリズムが署名対象とする範囲（AuthType/FormatフィールドからAuthCode
// フィールド直前まで）の算出と、Integrityトレーラ（パッド・Pad Length・Next
// Header・AuthCode）の組み立て/検証を担う。
package rmcp

import (
	"encoding/binary"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/cipher/integrity"
)

// Packet はパース済みのRMCP+セッションパケットを表す。
// rawはデータグラム全体を保持し、署名対象範囲の計算に使用する。
type Packet struct {
	PayloadType uint8
	SessionID   uint32
	Sequence    uint32
	Payload     []byte

	raw []byte
}

// Authenticated はセッション確立後の認証付きパケットかどうかを返す。
// セッションID 0はセッション外（ハンドシェイク）パケット。
func (p *Packet) Authenticated() bool {
	return p.SessionID != 0
}

// Parse はデータグラムをパースする。
// 認証付きパケットのトレーラ検証はAuthCode長がアルゴリズム依存のため
// ここでは行わず、VerifyIntegrityに委ねる。
func Parse(data []byte) (*Packet, error) {
	if len(data) < HeaderLength {
		return nil, ErrShortPacket
	}
	if data[0] != Version || data[3] != ClassIPMI {
		return nil, ErrBadRMCPHeader
	}
	if data[4] != AuthTypeRMCPPlus {
		return nil, ErrUnsupportedAuthType
	}

	p := &Packet{
		PayloadType: data[5],
		SessionID:   binary.LittleEndian.Uint32(data[6:10]),
		Sequence:    binary.LittleEndian.Uint32(data[10:14]),
		raw:         data,
	}

	payloadLen := int(binary.LittleEndian.Uint16(data[14:16]))
	if HeaderLength+payloadLen > len(data) {
		return nil, ErrLengthMismatch
	}
	if !p.Authenticated() && HeaderLength+payloadLen != len(data) {
		return nil, ErrLengthMismatch
	}
	p.Payload = data[HeaderLength : HeaderLength+payloadLen]

	return p, nil
}

// VerifyIntegrity は認証付きパケットのトレーラ構造とAuthCodeを検証する。
// 署名対象はAuthType/FormatフィールドからNext Headerフィールドまで。
// AuthCode不一致・トレーラ不正はfalseを返す（セッション層が破棄を判断する）。
func (p *Packet) VerifyIntegrity(algo *integrity.Integrity) (bool, error) {
	if algo == nil {
		return false, ErrNoIntegrity
	}

	acl := algo.AuthCodeLength()
	if acl == 0 {
		// Integrity None: トレーラなし、常に受理
		if HeaderLength+len(p.Payload) != len(p.raw) {
			return false, nil
		}
		return true, nil
	}

	// トレーラ: pad(0xFF×n) + padLen(1) + nextHeader(1) + authCode(acl)
	trailerStart := HeaderLength + len(p.Payload)
	signedEnd := len(p.raw) - acl
	if signedEnd < trailerStart+2 {
		return false, nil
	}
	if p.raw[signedEnd-1] != trailerNextHeader {
		return false, nil
	}
	padLen := int(p.raw[signedEnd-2])
	if trailerStart+padLen+2 != signedEnd {
		return false, nil
	}
	for _, b := range p.raw[trailerStart : trailerStart+padLen] {
		if b != 0xFF {
			return false, nil
		}
	}

	region := p.raw[rmcpHeaderLength:]
	signedLen := len(region) - acl
	return algo.Verify(region, signedLen, region[signedLen:])
}

// Marshal はRMCP+セッションパケットを組み立てる。
// sessionIDが非0かつアルゴリズムのAuthCode長が非0の場合、Integrityトレーラを
// 付与する。パッドはAuthType/FormatフィールドからNext Headerフィールドまでの
// バイト数が4の倍数になるよう0xFFで埋める。
func Marshal(payloadType uint8, sessionID, sequence uint32, payload []byte, algo *integrity.Integrity) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, ErrLengthMismatch
	}

	buf := make([]byte, 0, HeaderLength+len(payload)+32)
	buf = append(buf, Version, 0x00, SequenceNoAck, ClassIPMI)
	buf = append(buf, AuthTypeRMCPPlus, payloadType)
	buf = binary.LittleEndian.AppendUint32(buf, sessionID)
	buf = binary.LittleEndian.AppendUint32(buf, sequence)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)))
	buf = append(buf, payload...)

	if sessionID == 0 || algo == nil || algo.AuthCodeLength() == 0 {
		if sessionID != 0 && algo == nil {
			return nil, ErrNoIntegrity
		}
		return buf, nil
	}

	// signed部（AuthType以降）が padLen+2 追加後に4の倍数になるよう調整
	signedSoFar := len(buf) - rmcpHeaderLength
	padLen := (4 - (signedSoFar+2)%4) % 4
	for i := 0; i < padLen; i++ {
		buf = append(buf, 0xFF)
	}
	buf = append(buf, uint8(padLen), trailerNextHeader)

	region := buf[rmcpHeaderLength:]
	code, err := algo.Generate(region, len(region))
	if err != nil {
		return nil, err
	}
	return append(buf, code...), nil
}
