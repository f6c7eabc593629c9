// Package i18n holds the localized messages shown to learners.
package i18n

import "fmt"

// Message codes shared by the validator, the converters and the exercises.
const (
	CodeMissing        = "missing"
	CodeNotObject      = "not_object"
	CodeNotArray       = "not_array"
	CodeExtraField     = "extra_field"
	CodeMissingElement = "missing_element"
	CodeExtraElement   = "extra_element"
	CodeWrongType      = "wrong_type"
	CodeWrongValue     = "wrong_value"
	CodeDecodeError    = "decode_error"
	CodeInvalidInput   = "invalid_input"
	CodeEmptyInput     = "empty_input"
	CodeAdvance        = "advance"
	CodeFinished       = "finished"
	CodeProblems       = "problems"
)

// Translator retrieves localized messages for message codes. data carries
// the values embedded in the message ("path", "key", "index", "expected",
// "actual", "format", "detail", "next", "count").
type Translator interface {
	Message(code string, data map[string]string) string
}

const (
	English = "en"
	Persian = "fa"
)

// Languages lists the built-in languages.
func Languages() []string { return []string{English, Persian} }

// New returns the built-in dictionary Translator for lang. Unknown
// languages fall back to English.
func New(lang string) Translator {
	if lang != Persian {
		lang = English
	}
	return dictTranslator{lang: lang}
}

// Default is the English translator.
func Default() Translator { return dictTranslator{lang: English} }

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool { return lang == English || lang == Persian }

type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	path := data["path"]
	switch t.lang {
	case Persian:
		switch code {
		case CodeMissing:
			if path == "" {
				return "مقدار وارد نشده است."
			}
			return fmt.Sprintf("'%s' وارد نشده است.", path)
		case CodeNotObject:
			return fmt.Sprintf("'%s' باید یک شیء باشد، اما نوع %s دریافت شد.", or(path, "فیلد"), data["actual"])
		case CodeNotArray:
			return fmt.Sprintf("'%s' باید یک آرایه باشد، اما نوع %s دریافت شد.", or(path, "فیلد"), data["actual"])
		case CodeExtraField:
			return fmt.Sprintf("فیلد اضافی '%s' در '%s' وجود دارد.", data["key"], or(data["parent"], "root"))
		case CodeMissingElement:
			return fmt.Sprintf("عنصر %s در '%s' وارد نشده است.", data["index"], or(data["parent"], "آرایه"))
		case CodeExtraElement:
			return fmt.Sprintf("عنصر اضافی '%s' در '%s' وجود دارد.", data["index"], or(data["parent"], "آرایه"))
		case CodeWrongType:
			return fmt.Sprintf("نوع '%s' اشتباه است: انتظار %s ولی %s دریافت شد.", path, data["expected"], data["actual"])
		case CodeWrongValue:
			return fmt.Sprintf("مقدار '%s' نادرست است: انتظار '%s' ولی '%s' دریافت شد.", path, data["expected"], data["actual"])
		case CodeDecodeError:
			return fmt.Sprintf("خطا در %s: %s", data["format"], data["detail"])
		case CodeInvalidInput:
			return fmt.Sprintf("%s نادرست است", data["format"])
		case CodeEmptyInput:
			return "لطفاً متنی وارد کنید"
		case CodeAdvance:
			return fmt.Sprintf("ایول بریم مرحله بعد: %s", data["next"])
		case CodeFinished:
			return "ایول! این آخرین تمرین بود."
		case CodeProblems:
			return fmt.Sprintf("%s اشکال پیدا شد", data["count"])
		}
	default:
		switch code {
		case CodeMissing:
			if path == "" {
				return "value is missing."
			}
			return fmt.Sprintf("'%s' is missing.", path)
		case CodeNotObject:
			return fmt.Sprintf("'%s' must be an object, got %s.", or(path, "field"), data["actual"])
		case CodeNotArray:
			return fmt.Sprintf("'%s' must be an array, got %s.", or(path, "field"), data["actual"])
		case CodeExtraField:
			return fmt.Sprintf("extra field '%s' in '%s'.", data["key"], or(data["parent"], "root"))
		case CodeMissingElement:
			return fmt.Sprintf("element %s of '%s' is missing.", data["index"], or(data["parent"], "array"))
		case CodeExtraElement:
			return fmt.Sprintf("extra element '%s' in '%s'.", data["index"], or(data["parent"], "array"))
		case CodeWrongType:
			return fmt.Sprintf("wrong type for '%s': expected %s, got %s.", path, data["expected"], data["actual"])
		case CodeWrongValue:
			return fmt.Sprintf("wrong value for '%s': expected '%s', got '%s'.", path, data["expected"], data["actual"])
		case CodeDecodeError:
			return fmt.Sprintf("%s error: %s", data["format"], data["detail"])
		case CodeInvalidInput:
			return fmt.Sprintf("invalid %s", data["format"])
		case CodeEmptyInput:
			return "please enter some text"
		case CodeAdvance:
			return fmt.Sprintf("Correct! Next exercise: %s", data["next"])
		case CodeFinished:
			return "Correct! That was the last exercise."
		case CodeProblems:
			return fmt.Sprintf("%s problem(s) found", data["count"])
		}
	}
	return code
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
