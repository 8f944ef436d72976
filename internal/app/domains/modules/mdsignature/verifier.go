package mdsignature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
)

// HeaderName Shopify 签名头
const HeaderName = "X-Shopify-Hmac-Sha256"

// Verifier webhook 签名校验器
// 签名必须基于收到的原始字节计算，不能对解析后的 JSON 重新序列化
type Verifier struct {
	secret []byte
}

// NewVerifier 创建签名校验器
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign 计算原始载荷的 base64 HMAC-SHA256
func (v *Verifier) Sign(raw []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(raw)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify 校验签名，缺少签名头、缺少密钥或不匹配均拒绝
func (v *Verifier) Verify(raw []byte, signature string) error {
	if len(v.secret) == 0 {
		return errorx.ErrMissingSecret
	}
	if signature == "" {
		return errorx.ErrMissingSignature
	}

	expected := v.Sign(raw)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errorx.ErrSignatureMismatch
	}
	return nil
}
