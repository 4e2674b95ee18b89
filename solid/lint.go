// Package solid verifica a estrutura do documento de análise SOLID do
// ProcessadorDePedidos: cinco seções nível 2 no formato "N. XXX - Nome",
// na ordem SRP, OCP, LSP, ISP, DIP, cada uma com uma descrição de "Violação".
package solid

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Principles na ordem em que o documento deve apresentá-los.
var Principles = []string{"SRP", "OCP", "LSP", "ISP", "DIP"}

var headingRe = regexp.MustCompile(`^##\s+(\d+)\.\s+([A-Z]{3})\s+-\s+(\S.*)$`)

// violationRe casa "Violação", "**Violação:**", "- Violacao -" etc.
// O grupo 1 é o texto que vem depois do marcador na mesma linha.
var violationRe = regexp.MustCompile(`(?i)^[\s*_>\-]*viola(?:ção|cao)[\s*_]*[:\-–]?[\s*_]*(.*)$`)

type Section struct {
	Number    int
	Acronym   string
	Name      string
	Line      int
	Violation string
}

type Report struct {
	Sections []Section
	Problems []string
}

func (r Report) OK() bool { return len(r.Problems) == 0 }

// Check lê o documento e retorna as seções encontradas e os problemas.
// O erro só é não nulo em falha de leitura.
func Check(r io.Reader) (Report, error) {
	var (
		rep          Report
		cur          *Section
		wantNextText bool
		lineNo       int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")

		if strings.HasPrefix(line, "## ") {
			wantNextText = false
			m := headingRe.FindStringSubmatch(line)
			if m == nil {
				rep.Problems = append(rep.Problems, fmt.Sprintf("linha %d: título fora do padrão \"N. XXX - Nome\": %q", lineNo, line))
				cur = nil
				continue
			}
			n, _ := strconv.Atoi(m[1])
			rep.Sections = append(rep.Sections, Section{Number: n, Acronym: m[2], Name: strings.TrimSpace(m[3]), Line: lineNo})
			cur = &rep.Sections[len(rep.Sections)-1]
			continue
		}
		if cur == nil {
			continue
		}

		text := strings.TrimSpace(line)
		if wantNextText && text != "" {
			cur.Violation = text
			wantNextText = false
			continue
		}
		if cur.Violation != "" {
			continue
		}
		if m := violationRe.FindStringSubmatch(text); m != nil {
			if rest := strings.TrimSpace(m[1]); rest != "" {
				cur.Violation = rest
			} else {
				wantNextText = true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return rep, err
	}

	if len(rep.Sections) != len(Principles) {
		rep.Problems = append(rep.Problems, fmt.Sprintf("esperadas %d seções de princípio, encontradas %d", len(Principles), len(rep.Sections)))
	}
	for i, s := range rep.Sections {
		if i < len(Principles) {
			if s.Number != i+1 {
				rep.Problems = append(rep.Problems, fmt.Sprintf("linha %d: seção numerada %d, esperado %d", s.Line, s.Number, i+1))
			}
			if s.Acronym != Principles[i] {
				rep.Problems = append(rep.Problems, fmt.Sprintf("linha %d: seção %d é %s, esperado %s", s.Line, i+1, s.Acronym, Principles[i]))
			}
		}
		if s.Violation == "" {
			rep.Problems = append(rep.Problems, fmt.Sprintf("linha %d: seção %s sem descrição de violação", s.Line, s.Acronym))
		}
	}
	return rep, nil
}
