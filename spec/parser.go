package spec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	uerr "ucc/error"
)

const sectionDelim = "-----"

// Parse reads a language-definition file into a RootNode. The reader keeps a
// single line counter so every node and every error carries a valid 1-based
// row.
func Parse(src io.Reader) (*RootNode, error) {
	p := &parser{
		scanner: bufio.NewScanner(src),
	}
	return p.parse()
}

type parser struct {
	scanner *bufio.Scanner
	row     int
}

// readLine returns the next significant line. Blank lines and whole-line
// comments starting with '#' are skipped.
func (p *parser) readLine() (string, bool) {
	for p.scanner.Scan() {
		p.row++
		line := p.scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return line, true
	}
	return "", false
}

func (p *parser) specErr(cause error, detail string, row int) error {
	return &uerr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    row,
	}
}

func (p *parser) parse() (*RootNode, error) {
	terminals, err := p.parseTerminals()
	if err != nil {
		return nil, err
	}
	scanTab, err := p.parseScannerTable()
	if err != nil {
		return nil, err
	}
	prods, err := p.parseProductions()
	if err != nil {
		return nil, err
	}
	start, err := p.parseStartSymbol()
	if err != nil {
		return nil, err
	}
	return &RootNode{
		Terminals:    terminals,
		ScannerTable: scanTab,
		Productions:  prods,
		Start:        start,
	}, nil
}

func (p *parser) parseTerminals() ([]*TerminalNode, error) {
	var terminals []*TerminalNode
	for {
		line, ok := p.readLine()
		if !ok {
			return nil, p.specErr(synErrMissingSection, "terminals", p.row)
		}
		if line == sectionDelim {
			return terminals, nil
		}

		fields := strings.Fields(line)
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 0 {
			return nil, p.specErr(synErrInvalidTerminalID, fields[0], p.row)
		}
		if len(fields) < 2 {
			return nil, p.specErr(synErrNoTerminalName, line, p.row)
		}
		term := &TerminalNode{
			ID:   id,
			Name: fields[1],
			Row:  p.row,
		}
		if len(fields) > 2 {
			term.ReservedWord = fields[2]
		}
		terminals = append(terminals, term)
	}
}

func (p *parser) parseScannerTable() (*ScannerTableNode, error) {
	header, ok := p.readLine()
	if !ok || header == sectionDelim {
		return nil, p.specErr(synErrNoScannerColumns, "", p.row)
	}
	tab := &ScannerTableNode{
		Columns: strings.Fields(header),
	}

	state := 0
	for {
		line, ok := p.readLine()
		if !ok {
			return nil, p.specErr(synErrMissingSection, "scanner table", p.row)
		}
		if line == sectionDelim {
			return tab, nil
		}

		entries := strings.Fields(line)
		if len(entries) != len(tab.Columns) {
			return nil, p.specErr(synErrEntryCount, line, p.row)
		}
		tab.Rows = append(tab.Rows, &ScannerRowNode{
			State:   state,
			Entries: entries,
			Row:     p.row,
		})
		state++
	}
}

func (p *parser) parseProductions() ([]*ProductionNode, error) {
	var prods []*ProductionNode
	for {
		line, ok := p.readLine()
		if !ok {
			return nil, p.specErr(synErrMissingSection, "productions", p.row)
		}
		if line == sectionDelim {
			return prods, nil
		}

		prod, err := p.parseProduction(line)
		if err != nil {
			return nil, err
		}
		prods = append(prods, prod)
	}
}

func (p *parser) parseProduction(line string) (*ProductionNode, error) {
	rest := line

	lhs, rest, err := p.readSymbol(rest)
	if err != nil {
		return nil, err
	}
	if lhs == "" || lhs[0] != '<' {
		return nil, p.specErr(synErrNoProductionLHS, line, p.row)
	}

	arrow, rest, err := p.readSymbol(rest)
	if err != nil {
		return nil, err
	}
	if arrow != "->" {
		return nil, p.specErr(synErrNoArrow, line, p.row)
	}

	prod := &ProductionNode{
		LHS: lhs,
		Row: p.row,
	}
	for {
		var sym string
		sym, rest, err = p.readSymbol(rest)
		if err != nil {
			return nil, err
		}
		if sym == "" {
			return prod, nil
		}
		prod.RHS = append(prod.RHS, sym)
	}
}

// readSymbol consumes the next symbol from a production line. A symbol
// opened by '<' runs to the matching '>' and may contain spaces; the '>' of
// a whitespace-separated "->" arrow does not close it. Anything else runs
// to the next whitespace.
func (p *parser) readSymbol(line string) (sym string, rest string, err error) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i == len(line) {
		return "", "", nil
	}

	if line[i] == '<' {
		end := strings.IndexByte(line[i:], '>')
		if end >= 2 && line[i+end-1] == '-' && (line[i+end-2] == ' ' || line[i+end-2] == '\t') {
			end = -1
		}
		if end < 0 {
			return "", "", p.specErr(synErrUnclosedName, line[i:], p.row)
		}
		end += i
		return line[i : end+1], line[end+1:], nil
	}

	end := i
	for end < len(line) && line[end] != ' ' && line[end] != '\t' {
		end++
	}
	return line[i:end], line[end:], nil
}

func (p *parser) parseStartSymbol() (*StartSymbolNode, error) {
	line, ok := p.readLine()
	if !ok || line == sectionDelim {
		return nil, p.specErr(synErrNoStartSymbol, "", p.row)
	}
	return &StartSymbolNode{
		Name: strings.TrimSpace(line),
		Row:  p.row,
	}, nil
}
