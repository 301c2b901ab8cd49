package i18n

import "strings"

// Translator retrieves localized messages for Issue codes and report labels.
// data provides optional metadata to embed in the message (for example,
// "expected", "got" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "型が不正です ({expected} が必要ですが {got} でした)"
		case "required":
			tmpl = "必須プロパティが不足しています"
		case "duplicate_key":
			tmpl = "キーが重複しています"
		case "invalid_format":
			tmpl = "形式が不正です ({format})"
		case "invalid_enum":
			tmpl = "{field} の値 {got} は想定外です"
		case "invalid_const":
			tmpl = "{field} の値 {got} が変更されています ({want} のはずです)"
		case "overflow":
			tmpl = "範囲外の値です ({min}..{max})"
		case "parse_error":
			tmpl = "解析エラー"
		case "truncated":
			tmpl = "打ち切られました"
		case "roundtrip_mismatch":
			tmpl = "再エンコードで値が失われたか変更されました"
		case "report.lines":
			tmpl = "行数"
		case "report.well_formed":
			tmpl = "JSON 行"
		case "report.records":
			tmpl = "検査対象"
		case "report.field_violation":
			tmpl = "フィールド値の契約違反"
		case "report.notes":
			tmpl = "備考"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "invalid type (expected {expected}, got {got})"
		case "required":
			tmpl = "required property missing"
		case "duplicate_key":
			tmpl = "duplicate key"
		case "invalid_format":
			tmpl = "invalid format (want {format})"
		case "invalid_enum":
			tmpl = "{field} had unexpected value {got}"
		case "invalid_const":
			tmpl = "{field} changed to {got} (want {want}); bump the log version if this was intentional"
		case "overflow":
			tmpl = "value out of range ({min}..{max})"
		case "parse_error":
			tmpl = "parse error"
		case "truncated":
			tmpl = "truncated"
		case "roundtrip_mismatch":
			tmpl = "typed re-encode lost or changed data"
		case "report.lines":
			tmpl = "lines"
		case "report.well_formed":
			tmpl = "well-formed"
		case "report.records":
			tmpl = "records"
		case "report.field_violation":
			tmpl = "field value contract violated"
		case "report.notes":
			tmpl = "notes"
		}
	}
	if tmpl == "" {
		return code
	}
	if msg := fill(tmpl, data); msg != "" {
		return msg
	}
	return code
}

// fill substitutes {name} placeholders. The template is cut at the first
// placeholder data has no value for, together with a surrounding
// parenthetical when one opens before it. Substituted values are never
// inspected, so braces inside them are kept.
func fill(tmpl string, data map[string]string) string {
	if i := missingPlaceholder(tmpl, data); i >= 0 {
		if p := strings.LastIndex(tmpl[:i], " ("); p >= 0 {
			tmpl = tmpl[:p]
		} else {
			tmpl = strings.TrimSpace(tmpl[:i])
		}
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// missingPlaceholder returns the offset of the first {name} in tmpl with no
// entry in data, or -1.
func missingPlaceholder(tmpl string, data map[string]string) int {
	for off := 0; ; {
		i := strings.IndexByte(tmpl[off:], '{')
		if i < 0 {
			return -1
		}
		i += off
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			return -1
		}
		if _, ok := data[tmpl[i+1:i+j]]; !ok {
			return i
		}
		off = i + j + 1
	}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
