package integrity

import (
	"crypto/hmac"
	"hash"
)

// ConstantLength は鍵導出定数の長さ（バイト）。
// IPMI v2.0仕様はハッシュのブロック長ではなく20バイト固定の定数を定義している。
const ConstantLength = 20

// KeySlotK1 はAuthCode署名鍵K1の鍵スロット番号
const KeySlotK1 = 1

// const1 はK1導出用の定数（0x01を20回繰り返したもの）。
// プロセス全体で共有される不変データであり、変更してはならない。
var const1 = DerivationConstant(KeySlotK1)

// DerivationConstant は指定スロットの鍵導出定数を生成する。
// IPMI v2.0 Section 13.32: SIKだけではRSPの鍵素材が不足するため、
// スロット番号のオクテットを20バイト繰り返した公開定数をSIKでHMAC処理し、
// 最大255個の独立した鍵素材を導出する。スロット0は未定義。
func DerivationConstant(slot uint8) []byte {
	c := make([]byte, ConstantLength)
	for i := range c {
		c[i] = slot
	}
	return c
}

// DeriveKey は鍵導出を行う: HMAC(key=sik, msg=constant)。
// ハッシュ関数はAuthCode計算に用いるものと同一でなければならない。
// 戻り値の長さはハッシュのダイジェスト長に等しい。
// sikが空の場合はErrEmptySIKを返す（ハッシュライブラリ任せにせず即時失敗させる）。
func DeriveKey(newHash func() hash.Hash, sik, constant []byte) ([]byte, error) {
	if len(sik) == 0 {
		return nil, ErrEmptySIK
	}
	if len(constant) == 0 || constant[0] == 0 {
		return nil, ErrKeySlot
	}
	mac := hmac.New(newHash, sik)
	mac.Write(constant)
	return mac.Sum(nil), nil
}
