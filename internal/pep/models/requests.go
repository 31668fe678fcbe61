package models

import (
	"encoding/json"
	"unicode/utf8"

	dErrors "pepgate/pkg/domain-errors"
)

const maxExposedNameLength = 100

// declarationBody is the wire shape of the request payload. Names stay raw
// until the flag is known: a falsy flag discards them unexamined, so a
// malformed names field must not fail parsing in that case.
type declarationBody struct {
	IsPoliticallyExposed    *bool           `json:"is_politically_exposed"`
	PoliticallyExposedNames json.RawMessage `json:"politically_exposed_names"`
}

// ParseDeclaration parses and validates the raw request body.
//
// A falsy is_politically_exposed short-circuits: any supplied names are
// discarded, malformed or not, and the declaration succeeds with an empty
// list. Only an exposed declaration has its names checked: the list must be
// non-empty and every name 1-100 characters.
func ParseDeclaration(raw []byte) (Declaration, error) {
	var body declarationBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return Declaration{}, dErrors.Wrap(dErrors.CodeValidation, "malformed request body", err)
	}

	if body.IsPoliticallyExposed == nil || !*body.IsPoliticallyExposed {
		return Declaration{IsExposed: false, ExposedNames: nil}, nil
	}

	var names []string
	if len(body.PoliticallyExposedNames) > 0 {
		if err := json.Unmarshal(body.PoliticallyExposedNames, &names); err != nil {
			return Declaration{}, dErrors.Wrap(dErrors.CodeValidation,
				"politically_exposed_names must be a list of strings", err)
		}
	}
	if len(names) == 0 {
		return Declaration{}, dErrors.New(dErrors.CodeValidation,
			"politically_exposed_names is required for a politically exposed person")
	}
	for _, name := range names {
		if name == "" {
			return Declaration{}, dErrors.New(dErrors.CodeValidation,
				"politically_exposed_names must not contain empty names")
		}
		if utf8.RuneCountInString(name) > maxExposedNameLength {
			return Declaration{}, dErrors.New(dErrors.CodeValidation,
				"politically_exposed_names entries must be at most 100 characters")
		}
	}

	return Declaration{IsExposed: true, ExposedNames: names}, nil
}
