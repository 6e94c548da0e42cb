package main

import (
	"errors"
	"unicode/utf8"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
)

var (
	errSetupRequired     = errors.New("key 'setup' is required")
	errPunchlineRequired = errors.New("key 'punchline' is required")
	errInvalidUTF8       = errors.New("string is not valid UTF-8")
)

// UnmarshalEasyJSON requires both fields to be present as strings; null counts as missing.
func (j *Joke) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	var setupSet, punchlineSet bool
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "setup":
			j.Setup = validString(in)
			setupSet = true
		case "punchline":
			j.Punchline = validString(in)
			punchlineSet = true
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
	if !setupSet {
		in.AddError(errSetupRequired)
	}
	if !punchlineSet {
		in.AddError(errPunchlineRequired)
	}
}

func validString(in *jlexer.Lexer) string {
	s := in.String()
	if !utf8.ValidString(s) {
		in.AddError(errInvalidUTF8)
	}
	return s
}

// UnmarshalJSON leaves j untouched when decoding fails.
func (j *Joke) UnmarshalJSON(data []byte) error {
	var decoded Joke
	r := jlexer.Lexer{Data: data}
	decoded.UnmarshalEasyJSON(&r)
	if err := r.Error(); err != nil {
		return err
	}
	*j = decoded
	return nil
}

// decodeJoke never returns a partially populated Joke.
func decodeJoke(data []byte) (Joke, error) {
	var j Joke
	if err := easyjson.Unmarshal(data, &j); err != nil {
		return Joke{}, &DecodeError{Err: err}
	}
	return j, nil
}
