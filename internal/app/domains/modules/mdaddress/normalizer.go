package mdaddress

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer 地址第二行规范化
type Normalizer interface {
	Normalize(line2 string) string
}

var (
	leadingUnitPattern = regexp.MustCompile(`^(\d+)unit(\d*)`)
	unitTokenPattern   = regexp.MustCompile(`unit(\d*)`)
	digitRunPattern    = regexp.MustCompile(`\d+`)
)

// UnitNormalizer 把门牌/单元号统一写成 "Unit N"
//
// 规则按顺序匹配：
//   - 数字后紧跟 unit（如 2unit5）输出 "Unit N"，N 优先取 unit 后的数字
//   - 不含 unit 时取第一个连续数字串
//   - 其余情况只替换 unit 片段，其他字符保持小写且无空白
type UnitNormalizer struct{}

// NewUnitNormalizer 创建规范化器
func NewUnitNormalizer() *UnitNormalizer {
	return &UnitNormalizer{}
}

// Normalize 规范化地址第二行，空串或纯空白原样返回
func (n *UnitNormalizer) Normalize(line2 string) string {
	if strings.TrimSpace(line2) == "" {
		return line2
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, line2)

	if m := leadingUnitPattern.FindStringSubmatch(compact); m != nil {
		digits := m[2]
		if digits == "" {
			digits = m[1]
		}
		return unitLabel(digits)
	}

	loc := unitTokenPattern.FindStringSubmatchIndex(compact)
	if loc == nil {
		return unitLabel(digitRunPattern.FindString(compact))
	}

	digits := compact[loc[2]:loc[3]]
	return strings.TrimSpace(compact[:loc[0]] + unitLabel(digits) + compact[loc[1]:])
}

func unitLabel(digits string) string {
	return strings.TrimSpace("Unit " + digits)
}
