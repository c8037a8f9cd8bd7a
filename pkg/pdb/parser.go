// Package pdb reads Protein Data Bank files: atom coordinates and the
// HELIX/SHEET secondary-structure records.
package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/philipparndt/protedit/pkg/geometry"
)

// ErrNoAtoms is returned for files without ATOM or HETATM records
var ErrNoAtoms = errors.New("no atoms found")

// ParseFile reads a PDB file from disk
func ParseFile(filename string) (*Structure, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return s, nil
}

// Parse reads PDB records from r. Parsing stops at the end of the first
// model. Residues covered by HELIX or SHEET records are tagged accordingly,
// every other residue is coil.
func Parse(reader io.Reader) (*Structure, error) {
	scanner := bufio.NewScanner(reader)
	s := &Structure{}

	lineNo := 0
scan:
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch record := strings.TrimSpace(column(line, 1, 6)); record {
		case "HEADER":
			s.ID = strings.TrimSpace(column(line, 63, 66))

		case "ATOM", "HETATM":
			atom, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			atom.Hetero = record == "HETATM"
			s.Atoms = append(s.Atoms, atom)

		case "HELIX":
			r, err := parseRange(line, 20, 22, 25, 34, 37)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			s.Helices = append(s.Helices, r)

		case "SHEET":
			r, err := parseRange(line, 22, 23, 26, 34, 37)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			s.Sheets = append(s.Sheets, r)

		case "ENDMDL", "END":
			break scan
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PDB: %w", err)
	}
	if len(s.Atoms) == 0 {
		return nil, ErrNoAtoms
	}

	s.assignSecondaryStructure()
	return s, nil
}

func (s *Structure) assignSecondaryStructure() {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		a.SS = Coil
		for _, r := range s.Helices {
			if r.Contains(a.Chain, a.ResSeq) {
				a.SS = Helix
			}
		}
		for _, r := range s.Sheets {
			if r.Contains(a.Chain, a.ResSeq) {
				a.SS = Sheet
			}
		}
	}
}

func parseAtom(line string) (Atom, error) {
	serial, err := parseInt(column(line, 7, 11))
	if err != nil {
		return Atom{}, fmt.Errorf("invalid atom serial: %w", err)
	}
	resSeq, err := parseInt(column(line, 23, 26))
	if err != nil {
		return Atom{}, fmt.Errorf("invalid residue number: %w", err)
	}

	var xyz [3]float64
	for i, start := range []int{31, 39, 47} {
		v, err := strconv.ParseFloat(strings.TrimSpace(column(line, start, start+7)), 64)
		if err != nil {
			return Atom{}, fmt.Errorf("invalid coordinate: %w", err)
		}
		xyz[i] = v
	}

	atom := Atom{
		Serial:   serial,
		Name:     strings.TrimSpace(column(line, 13, 16)),
		ResName:  strings.TrimSpace(column(line, 18, 20)),
		Chain:    strings.TrimSpace(column(line, 22, 22)),
		ResSeq:   resSeq,
		ICode:    strings.TrimSpace(column(line, 27, 27)),
		Position: geometry.NewVector3(xyz[0], xyz[1], xyz[2]),
		Element:  strings.ToUpper(strings.TrimSpace(column(line, 77, 78))),
	}
	if atom.Element == "" {
		atom.Element = elementFromName(atom.Name)
	}
	return atom, nil
}

// parseRange reads chain, start and end residue columns of HELIX/SHEET
func parseRange(line string, chainCol, startFrom, startTo, endFrom, endTo int) (Range, error) {
	start, err := parseInt(column(line, startFrom, startTo))
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start: %w", err)
	}
	end, err := parseInt(column(line, endFrom, endTo))
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end: %w", err)
	}
	return Range{
		Chain: strings.TrimSpace(column(line, chainCol, chainCol)),
		Start: start,
		End:   end,
	}, nil
}

// column returns the 1-based inclusive column span, clipped to the line
func column(line string, from, to int) string {
	if from > len(line) {
		return ""
	}
	return line[from-1 : min(to, len(line))]
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// elementFromName guesses the element from the atom name's first letter
func elementFromName(name string) string {
	for _, r := range name {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
	}
	return ""
}
