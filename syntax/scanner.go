package syntax

import (
	"fmt"
	"strings"

	"meld/logging"
)

// Error is a lexical or grammatical error produced while scanning or parsing a
// module.  It carries the position of the offending text so diagnostics can
// point at the source.
type Error struct {
	Message  string
	Kind     int
	Context  *logging.LogContext
	Position *logging.TextPosition
}

func (e *Error) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("%s: %s (%d:%d)", e.Context.ModuleName, e.Message, e.Position.StartLn, e.Position.StartCol)
	}

	return fmt.Sprintf("%s: %s", e.Context.ModuleName, e.Message)
}

// IsLetter tests if a rune is an ASCII letter or underscore
func IsLetter(r rune) bool {
	return r > '`' && r < '{' || r > '@' && r < '[' || r == '_'
}

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// NewScanner creates a scanner for the given source text
func NewScanner(src string, lctx *logging.LogContext) *Scanner {
	return &Scanner{file: strings.NewReader(src), lctx: lctx, line: 1}
}

// Scanner works like an io.Reader for source text (outputting tokens)
type Scanner struct {
	lctx *logging.LogContext

	file *strings.Reader

	line int
	col  int

	tokBuilder strings.Builder

	curr rune
}

// ReadToken reads a single token from the stream.  At the end of the input it
// returns an EOF token rather than an error.
func (s *Scanner) ReadToken() (*Token, error) {
	for s.readNext() {
		switch s.curr {
		// discard whitespace and other non-meaningful characters (BOM,
		// form-feeds, etc.); line counting is handled in readNext
		case ' ', '\t', '\n', '\r', '\f', '\v', 65279:
			s.tokBuilder.Reset()
			continue
		// line comments run to the end of the line
		case '#':
			s.tokBuilder.Reset()
			for ahead, more := s.peek(); more && ahead != '\n'; ahead, more = s.peek() {
				s.readNext()
				s.tokBuilder.Reset()
			}
			continue
		case '"':
			return s.readStringLit()
		default:
			if IsLetter(s.curr) {
				return s.readWord()
			} else if IsDigit(s.curr) {
				return s.readNumberLit()
			}

			return s.readSymbol()
		}
	}

	return &Token{Kind: EOF, Line: s.line, Col: s.col}, nil
}

// readWord reads in an identifier or keyword
func (s *Scanner) readWord() (*Token, error) {
	for ahead, more := s.peek(); more && (IsLetter(ahead) || IsDigit(ahead)); ahead, more = s.peek() {
		s.readNext()
	}

	// `fail!` is the one keyword that carries a trailing `!`
	if s.tokBuilder.String() == "fail" {
		if ahead, more := s.peek(); more && ahead == '!' {
			s.readNext()
		}
	}

	value := s.tokBuilder.String()
	s.tokBuilder.Reset()

	if kind, ok := keywordPatterns[value]; ok {
		return s.makeToken(kind, value), nil
	}

	return s.makeToken(IDENTIFIER, value), nil
}

// readNumberLit reads in a numeric literal
func (s *Scanner) readNumberLit() (*Token, error) {
	for ahead, more := s.peek(); more && IsDigit(ahead); ahead, more = s.peek() {
		s.readNext()
	}

	value := s.tokBuilder.String()
	s.tokBuilder.Reset()
	return s.makeToken(INTLIT, value), nil
}

// readStringLit reads in a string literal (used only for require paths)
func (s *Scanner) readStringLit() (*Token, error) {
	// drop the opening quote from the builder so the token value is the
	// literal's content
	s.tokBuilder.Reset()

	for s.readNext() {
		if s.curr == '"' {
			value := s.tokBuilder.String()
			s.tokBuilder.Reset()

			// trim the closing quote
			return s.makeToken(STRINGLIT, value[:len(value)-1]), nil
		} else if s.curr == '\n' {
			break
		}
	}

	return nil, s.malformed("unclosed string literal")
}

// readSymbol reads in a symbolic token, longest match winning
func (s *Scanner) readSymbol() (*Token, error) {
	// `!` only begins a token as part of `!=`
	if s.curr == '!' {
		if ahead, more := s.peek(); more && ahead == '=' {
			s.readNext()
			value := s.tokBuilder.String()
			s.tokBuilder.Reset()
			return s.makeToken(NEQ, value), nil
		}

		return nil, s.malformed("unexpected character `!`")
	}

	if _, ok := symbolPatterns[s.tokBuilder.String()]; !ok {
		tok := s.tokBuilder.String()
		s.tokBuilder.Reset()
		return nil, s.malformed(fmt.Sprintf("unexpected character `%s`", tok))
	}

	// greedily extend the symbol while a longer pattern still matches
	for ahead, more := s.peek(); more; ahead, more = s.peek() {
		if _, ok := symbolPatterns[s.tokBuilder.String()+string(ahead)]; !ok {
			break
		}

		s.readNext()
	}

	value := s.tokBuilder.String()
	s.tokBuilder.Reset()
	return s.makeToken(symbolPatterns[value], value), nil
}

// makeToken produces a token of the given kind and value at the current position
func (s *Scanner) makeToken(kind int, value string) *Token {
	return &Token{Kind: kind, Value: value, Line: s.line, Col: s.col}
}

// malformed produces a lexical error at the current position
func (s *Scanner) malformed(message string) error {
	return &Error{
		Message:  message,
		Kind:     logging.LMKToken,
		Context:  s.lctx,
		Position: &logging.TextPosition{StartLn: s.line, StartCol: s.col, EndLn: s.line, EndCol: s.col + 1},
	}
}

// readNext moves the scanner forward one rune, accumulating into the token
// builder.  It returns false at the end of the input.
func (s *Scanner) readNext() bool {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return false
	}

	s.curr = r
	s.tokBuilder.WriteRune(r)

	switch r {
	case '\n':
		s.line++
		s.col = 0
	case '\t':
		s.col += 4
	default:
		s.col++
	}

	return true
}

// peek looks ahead one rune without consuming it
func (s *Scanner) peek() (rune, bool) {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return 0, false
	}

	_ = s.file.UnreadRune()
	return r, true
}
