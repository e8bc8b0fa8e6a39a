// Package format は金額の丸め・表示整形ヘルパーを提供します。
package format

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Crore は南アジアの大数単位（1,000万）です。
	Crore = 10_000_000
	// Lac は南アジアの大数単位（10万）です。
	Lac = 100_000
)

// Round2 は金額を小数点以下2桁に丸めます。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CroreLac は大きな金額をcrore/lac単位でスケールした文字列を返します。
// 1,000万以上は "cr"、10万以上は "lac"、それ未満は桁区切り付きの数値です。
// 符号は接頭辞として保持されます。
func CroreLac(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	amt := math.Abs(amount)
	switch {
	case amt >= Crore:
		return fmt.Sprintf("%s%.2f cr", sign, amt/Crore)
	case amt >= Lac:
		return fmt.Sprintf("%s%.2f lac", sign, amt/Lac)
	default:
		return sign + Grouped(amt)
	}
}

// Grouped は非負の金額を3桁区切り・小数点以下2桁の文字列にします（例: "1,234.56"）。
func Grouped(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var b strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(digit)
		}
		intPart = b.String()
	}

	return intPart + "." + decPart
}
