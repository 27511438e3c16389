// Package rakp はRAKP-HMAC-SHA1認証アルゴリズムのHMAC計算を実装する
// （IPMI v2.0 Section 13.28 / 13.31）。
// Open Session〜RAKP Message 4のハンドシェイクで交換される各認証コードと、
// セッション確立時のSIK（Session Integrity Key）を導出する。
package rakp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
)

// ICVLength はRAKP Message 4のIntegrity Check Value長（バイト）。
// RAKP-HMAC-SHA1ではHMAC-SHA1出力の先頭12バイトに切り詰める。
const ICVLength = 12

// hmacSHA1 はHMAC-SHA1を計算する
func hmacSHA1(key []byte, chunks ...[]byte) []byte {
	mac := hmac.New(sha1.New, key)
	for _, c := range chunks {
		mac.Write(c)
	}
	return mac.Sum(nil)
}

// le32 はuint32をリトルエンディアン4バイトに変換する
func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// ComputeSIK はSIKを導出する:
// SIK = HMAC(K_G, R_RC ‖ R_MS ‖ Role ‖ ULen ‖ UName)。
// kgはBMC鍵（K_G）。one-key運用ではユーザー鍵K_UIDをそのまま渡す。
func ComputeSIK(kg, randRC, randMS []byte, role uint8, username string) []byte {
	return hmacSHA1(kg, randRC, randMS, []byte{role, uint8(len(username))}, []byte(username))
}

// Message2AuthCode はRAKP Message 2の認証コードを計算する:
// HMAC(K_UID, SID_RC ‖ SID_MS ‖ R_RC ‖ R_MS ‖ GUID_MS ‖ Role ‖ ULen ‖ UName)。
func Message2AuthCode(kuid []byte, sidRC, sidMS uint32, randRC, randMS, guidMS []byte, role uint8, username string) []byte {
	return hmacSHA1(kuid,
		le32(sidRC), le32(sidMS),
		randRC, randMS, guidMS,
		[]byte{role, uint8(len(username))},
		[]byte(username),
	)
}

// Message3AuthCode はRAKP Message 3の認証コードを計算する:
// HMAC(K_UID, R_MS ‖ SID_RC ‖ Role ‖ ULen ‖ UName)。
func Message3AuthCode(kuid, randMS []byte, sidRC uint32, role uint8, username string) []byte {
	return hmacSHA1(kuid,
		randMS, le32(sidRC),
		[]byte{role, uint8(len(username))},
		[]byte(username),
	)
}

// Message4ICV はRAKP Message 4のIntegrity Check Valueを計算する:
// HMAC(SIK, R_RC ‖ SID_MS ‖ GUID_MS) の先頭12バイト。
func Message4ICV(sik, randRC []byte, sidMS uint32, guidMS []byte) []byte {
	return hmacSHA1(sik, randRC, le32(sidMS), guidMS)[:ICVLength]
}

// VerifyMessage3 はRAKP Message 3の認証コードを定数時間比較で検証する
func VerifyMessage3(kuid, randMS []byte, sidRC uint32, role uint8, username string, offered []byte) bool {
	expected := Message3AuthCode(kuid, randMS, sidRC, role, username)
	return hmac.Equal(expected, offered)
}
