package webvtt

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// State is the position of the parser's block state machine.
type State int

const (
	StateInitial State = iota
	StateHeader
	StateNote
	StateStyle
	StateRegion
	StateID
	StateCue
	StateCueText
	StateBadCue
	StateBadWebVTT
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateHeader:
		return "HEADER"
	case StateNote:
		return "NOTE"
	case StateStyle:
		return "STYLE"
	case StateRegion:
		return "REGION"
	case StateID:
		return "ID"
	case StateCue:
		return "CUE"
	case StateCueText:
		return "CUETEXT"
	case StateBadCue:
		return "BADCUE"
	case StateBadWebVTT:
		return "BADWEBVTT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	noteRegex        = regexp.MustCompile(`^NOTE($|[ \t])`)
	styleBlockRegex  = regexp.MustCompile(`^STYLE($|[ \t])`)
	regionBlockRegex = regexp.MustCompile(`^REGION($|[ \t])`)
)

// Handlers receive everything the parser produces. Any of them may be nil.
type Handlers struct {
	OnCue          func(*Cue)
	OnRegion       func(*Region)
	OnParsingError func(*ParseError)
	OnTimestampMap func(TimestampMap)
	OnStyle        func(string)
	OnFlush        func()
}

type Options struct {
	// defaults to UTF-8 with BOM removal
	Decoder Decoder
	Logger  *zap.SugaredLogger
}

// Parser is a streaming WebVTT parser. Feed it chunks with Parse in any
// framing and finish with Flush. A Parser is not safe for concurrent use.
type Parser struct {
	decoder  Decoder
	handlers Handlers
	logger   *zap.SugaredLogger

	lines   lineCollector
	state   State
	cue     *Cue
	regions []*Region
	// a line that closed a cue and still has to be read as the next cue's start
	held    *string
	// lines of the STYLE or REGION block being collected, after its first line
	block   []string
	blockID string
	seenCue bool
}

func NewParser(handlers Handlers, opts Options) *Parser {
	p := &Parser{
		decoder:  opts.Decoder,
		handlers: handlers,
		logger:   opts.Logger,
		state:    StateInitial,
	}
	if p.decoder == nil {
		p.decoder = NewUTF8Decoder()
	}
	if p.logger == nil {
		p.logger = zap.NewNop().Sugar()
	}
	return p
}

func (p *Parser) State() State {
	return p.state
}

// regions defined so far, in definition order
func (p *Parser) Regions() []*Region {
	out := make([]*Region, len(p.regions))
	copy(out, p.regions)
	return out
}

// Parse decodes chunk and consumes every complete line buffered so far. An
// empty chunk only resumes consumption. The returned error is a decoder
// failure; parse errors go to OnParsingError.
func (p *Parser) Parse(chunk []byte) error {
	if len(chunk) > 0 {
		text, err := p.decoder.Decode(chunk, true)
		if err != nil {
			return fmt.Errorf("decode chunk: %w", err)
		}
		p.lines.write(text)
	}
	p.consume()
	return nil
}

func (p *Parser) ParseString(s string) error {
	return p.Parse([]byte(s))
}

// Flush finalizes any pending cue or header and reports a BadSignature if no
// signature line was ever seen.
func (p *Parser) Flush() error {
	tail, err := p.decoder.Decode(nil, false)
	if err != nil {
		return fmt.Errorf("decode final chunk: %w", err)
	}
	p.lines.write(tail)

	if p.needsFinalBlankLine() {
		p.lines.write("\n\n")
		p.consume()
	}

	if p.state == StateInitial {
		p.report(newParseError(BadSignature, ""))
	}

	p.logger.Debugw("parser flushed", "state", p.state.String(), "lines", p.lines.lines())
	if p.handlers.OnFlush != nil {
		p.handlers.OnFlush()
	}
	return nil
}

// ParseReader feeds r to the parser in chunks of chunkSize bytes and flushes.
func (p *Parser) ParseReader(r io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if perr := p.Parse(buf[:n]); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	return p.Flush()
}

func (p *Parser) needsFinalBlankLine() bool {
	if p.cue != nil || p.held != nil {
		return true
	}
	switch p.state {
	case StateHeader, StateStyle, StateRegion:
		return true
	case StateInitial:
		return !p.lines.empty()
	}
	return false
}

func (p *Parser) consume() {
	err := p.consumeLines()
	if err == nil {
		return
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		perr = newParseError(BadTimeStamp, err.Error())
	}
	p.report(perr)

	if p.state == StateCueText && p.cue != nil {
		p.emitCue()
	}
	p.cue = nil
	if p.state == StateInitial {
		p.state = StateBadWebVTT
	} else {
		p.state = StateBadCue
	}
}

func (p *Parser) consumeLines() error {
	for p.state == StateInitial {
		line, ok := p.lines.next()
		if !ok {
			return nil
		}
		// blank lines before the signature are skipped
		if line == "" {
			continue
		}
		if !signatureRegex.MatchString(line) {
			return p.atLine(newParseError(BadSignature, ""))
		}
		p.transition(StateHeader)
	}

	for {
		line, ok := p.nextLine()
		if !ok {
			return nil
		}
		if err := p.handleLine(line); err != nil {
			return err
		}
	}
}

func (p *Parser) nextLine() (string, bool) {
	if p.held != nil {
		line := *p.held
		p.held = nil
		return line, true
	}
	return p.lines.next()
}

func (p *Parser) handleLine(line string) error {
	switch p.state {
	case StateHeader:
		if strings.Contains(line, ":") {
			p.parseHeader(line)
		} else if line == "" {
			p.transition(StateID)
		}

	case StateNote:
		if line == "" {
			p.transition(StateID)
		}

	case StateStyle:
		if strings.Contains(line, "-->") {
			p.abandonBlock(line, p.emitStyle)
			return nil
		}
		if line == "" {
			p.emitStyle()
			p.transition(StateID)
			return nil
		}
		p.block = append(p.block, line)

	case StateRegion:
		if strings.Contains(line, "-->") {
			p.abandonBlock(line, p.emitRegion)
			return nil
		}
		if line == "" {
			p.emitRegion()
			p.transition(StateID)
			return nil
		}
		p.block = append(p.block, line)

	case StateID:
		if noteRegex.MatchString(line) {
			p.transition(StateNote)
			return nil
		}
		if line == "" {
			return nil
		}
		if !p.seenCue && styleBlockRegex.MatchString(line) {
			p.block, p.blockID = nil, line
			p.transition(StateStyle)
			return nil
		}
		if !p.seenCue && regionBlockRegex.MatchString(line) {
			p.block, p.blockID = nil, line
			p.transition(StateRegion)
			return nil
		}

		p.cue = NewCue(0, 0, "")
		p.seenCue = true
		p.transition(StateCue)
		if !strings.Contains(line, "-->") {
			p.cue.ID = line
			return nil
		}
		p.parseTimingLine(line)

	case StateCue:
		p.parseTimingLine(line)

	case StateCueText:
		if line == "" || strings.Contains(line, "-->") {
			if line != "" {
				held := line
				p.held = &held
			}
			p.emitCue()
			p.transition(StateID)
			return nil
		}
		p.appendCueText(line)

	case StateBadCue:
		if line == "" {
			p.transition(StateID)
		}
	}
	return nil
}

func (p *Parser) parseTimingLine(line string) {
	if err := parseCueTiming(line, p.cue, p.regions); err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			perr = newParseError(BadTimeStamp, err.Error())
		}
		p.report(p.atLine(perr))
		p.logger.Debugw("cue discarded", "id", p.cue.ID, "line", p.lines.lines())
		p.cue = nil
		p.transition(StateBadCue)
		return
	}
	p.transition(StateCueText)
}

// paragraph and line separators inside cue text become plain newlines
var cueTextNewlines = strings.NewReplacer("\u2028", "\n", "\u2029", "\n")

func (p *Parser) appendCueText(line string) {
	if p.cue.Text != "" {
		p.cue.Text += "\n"
	}
	p.cue.Text += cueTextNewlines.Replace(line)
}

func (p *Parser) emitCue() {
	cue := p.cue
	p.cue = nil
	if cue == nil {
		return
	}
	if p.handlers.OnCue != nil {
		p.handlers.OnCue(cue)
	}
}

// handles a timing line inside a STYLE or REGION block. Right after the block's
// first line it turns the block into a cue with that line as its id; later on it
// ends the block and the timing line starts the next cue.
func (p *Parser) abandonBlock(line string, finish func()) {
	if len(p.block) > 0 {
		finish()
		held := line
		p.held = &held
		p.transition(StateID)
		return
	}

	p.block = nil
	p.cue = NewCue(0, 0, "")
	p.cue.ID = p.blockID
	p.seenCue = true
	p.transition(StateCue)
	p.parseTimingLine(line)
}

func (p *Parser) emitRegion() {
	p.parseRegion(strings.Join(p.block, " "), ":")
	p.block = nil
}

func (p *Parser) emitStyle() {
	text := strings.Join(p.block, "\n")
	p.block = nil
	if p.handlers.OnStyle != nil {
		p.handlers.OnStyle(text)
	}
}

func (p *Parser) report(err *ParseError) {
	p.logger.Debugw("parsing error", "code", err.Code.String(), "line", err.Line, "message", err.Message)
	if p.handlers.OnParsingError != nil {
		p.handlers.OnParsingError(err)
	}
}

func (p *Parser) atLine(err *ParseError) *ParseError {
	err.Line = p.lines.lines()
	return err
}

func (p *Parser) transition(next State) {
	if p.state == next {
		return
	}
	p.logger.Debugw("state transition", "from", p.state.String(), "to", next.String())
	p.state = next
}
