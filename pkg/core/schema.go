package core

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

// Frontmatter keys.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSlug        = "slug"
	FieldDate        = "date"
	FieldTemplate    = "template"
	FieldShowInNav   = "showInNav"
	FieldNavOrder    = "navOrder"
	FieldMetaImage   = "metaImage"
)

// Fields lists the schema keys in report order.
var Fields = []string{
	FieldTitle,
	FieldDescription,
	FieldSlug,
	FieldDate,
	FieldTemplate,
	FieldShowInNav,
	FieldNavOrder,
	FieldMetaImage,
}

var (
	slugPattern      = regexp.MustCompile(`^/[a-z0-9-/]*$`)
	metaImagePattern = regexp.MustCompile(`^\./images/.*\.(jpg|jpeg|png|webp)$`)
)

// Violation codes produced by the type checks. The remaining codes come from
// ozzo-validation (validation_required, validation_key_missing,
// validation_length_out_of_range, validation_match_invalid, validation_in_invalid).
const (
	CodeNotString  = "sitegen_not_string"
	CodeNotBool    = "sitegen_not_bool"
	CodeNotInteger = "sitegen_not_integer"
	CodeNotDate    = "sitegen_not_date"
)

var (
	errNotString  = validation.NewError(CodeNotString, "must be a string")
	errNotBool    = validation.NewError(CodeNotBool, "must be a boolean")
	errNotInteger = validation.NewError(CodeNotInteger, "must be an integer")
	errNotDate    = validation.NewError(CodeNotDate, "must be a calendar date in YYYY-MM-DD format")
)

// pageRules is the page schema. Each key is validated on its own, so one call
// reports every failing field.
func pageRules() validation.MapRule {
	templates := make([]interface{}, len(Templates))
	for i, t := range Templates {
		templates[i] = string(t)
	}

	templateErr := validation.ErrInInvalid.SetMessage("must be one of " + templateNames())
	metaImageErr := validation.ErrMatchInvalid.SetMessage("must match " + metaImagePattern.String())

	return validation.Map(
		validation.Key(FieldTitle,
			validation.Required, isString, validation.RuneLength(1, 70)),
		validation.Key(FieldDescription,
			validation.Required, isString, validation.RuneLength(50, 160)),
		validation.Key(FieldSlug,
			validation.Required, isString,
			validation.Match(slugPattern).Error("must match "+slugPattern.String())),
		validation.Key(FieldDate,
			validation.Required, isDate),
		validation.Key(FieldTemplate,
			isString, nonEmpty(templateErr),
			validation.In(templates...).ErrorObject(templateErr)).Optional(),
		validation.Key(FieldShowInNav, isBool).Optional(),
		validation.Key(FieldNavOrder, isInteger).Optional(),
		validation.Key(FieldMetaImage,
			isString, nonEmpty(metaImageErr),
			validation.Match(metaImagePattern).ErrorObject(metaImageErr)).Optional(),
	).AllowExtraKeys()
}

var (
	isString = validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, ok := value.(string); !ok {
			return errNotString
		}
		return nil
	})
	isBool = validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, ok := value.(bool); !ok {
			return errNotBool
		}
		return nil
	})
	isInteger = validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, ok := toInt(value); !ok {
			return errNotInteger
		}
		return nil
	})
	isDate = validation.By(func(value interface{}) error {
		if value == nil {
			return nil
		}
		if _, ok := toDate(value); !ok {
			return errNotDate
		}
		return nil
	})
)

// nonEmpty rejects an explicit empty string, which In and Match skip.
func nonEmpty(err validation.Error) validation.Rule {
	return validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && s == "" {
			return err
		}
		return nil
	})
}

func templateNames() string {
	names := make([]string, len(Templates))
	for i, t := range Templates {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Validate checks a document's frontmatter against the page schema and
// returns the normalized metadata. When violations are returned the metadata
// is the zero value.
func Validate(doc Document) (PageMetadata, []Violation) {
	raw := map[string]interface{}(doc.Metadata)
	if raw == nil {
		raw = map[string]interface{}{}
	}

	err := validation.Validate(raw, pageRules())
	if err != nil {
		return PageMetadata{}, violations(doc.SourcePath, raw, err)
	}
	return normalize(raw), nil
}

// ValidateAll validates every document before reporting. The returned pages
// keep the input order.
func ValidateAll(docs []Document) ([]Page, error) {
	pages := make([]Page, 0, len(docs))
	var all []Violation
	for _, doc := range docs {
		meta, vs := Validate(doc)
		if len(vs) > 0 {
			all = append(all, vs...)
			continue
		}
		pages = append(pages, Page{Document: doc, Meta: meta})
	}
	if len(all) > 0 {
		return nil, &SchemaError{Violations: all}
	}
	return pages, nil
}

func violations(source string, raw map[string]interface{}, err error) []Violation {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []Violation{{Source: source, Field: "", Code: "internal", Reason: err.Error()}}
	}

	out := make([]Violation, 0, len(errs))
	for _, field := range Fields {
		fieldErr, ok := errs[field]
		if !ok {
			continue
		}
		v := Violation{Source: source, Field: field, Reason: fieldErr.Error()}
		var verr validation.Error
		if errors.As(fieldErr, &verr) {
			v.Code = verr.Code()
		}
		if field == FieldSlug && v.Code == validation.ErrMatchInvalid.Code() {
			if s, ok := raw[FieldSlug].(string); ok {
				if hint := SuggestSlug(s); hint != s && slugPattern.MatchString(hint) {
					v.Reason = fmt.Sprintf("%s (try %q)", v.Reason, hint)
				}
			}
		}
		out = append(out, v)
	}
	return out
}

// normalize assumes raw already passed pageRules.
func normalize(raw map[string]interface{}) PageMetadata {
	meta := PageMetadata{
		Title:       raw[FieldTitle].(string),
		Description: raw[FieldDescription].(string),
		Slug:        raw[FieldSlug].(string),
		Template:    TemplatePage,
		ShowInNav:   true,
	}
	meta.Date, _ = toDate(raw[FieldDate])

	if s, ok := raw[FieldTemplate].(string); ok && s != "" {
		meta.Template = Template(s)
	}
	if b, ok := raw[FieldShowInNav].(bool); ok {
		meta.ShowInNav = b
	}
	if n, ok := toInt(raw[FieldNavOrder]); ok {
		meta.NavOrder = &n
	}
	if s, ok := raw[FieldMetaImage].(string); ok {
		meta.MetaImage = s
	}
	return meta
}

// SuggestSlug normalizes every path segment of s into a slug path.
func SuggestSlug(s string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		normalized, err := slug.Normalize(seg)
		if err != nil || normalized == "" {
			continue
		}
		out = append(out, strings.ToLower(normalized))
	}
	return "/" + strings.Join(out, "/")
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		// 2^63 overflows int; MaxInt itself is not representable as float64.
		if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func toDate(value interface{}) (Date, bool) {
	switch v := value.(type) {
	case string:
		d, err := ParseDate(v)
		return d, err == nil
	case time.Time:
		return DateOf(v), true
	case Date:
		return v, !v.IsZero()
	}
	return Date{}, false
}
