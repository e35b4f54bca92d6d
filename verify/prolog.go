package verify

import (
	"github.com/ichiban/prolog"
)

type Logic struct {
	prolog *prolog.Interpreter
}

func NewProlog() *Logic {
	return &Logic{
		prolog: prolog.New(nil, nil),
	}
}

// ConsultAndQuery1 loads program and runs query, returning the bindings of
// the first solution if there is one.
func (p *Logic) ConsultAndQuery1(program string, query string) (found bool, bindings map[string]string, err error) {
	if err := p.prolog.Exec(program); err != nil {
		return false, nil, err
	}
	solutions, err := p.prolog.Query(query)
	if err != nil {
		return false, nil, err
	}
	defer func() {
		if cerr := solutions.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if !solutions.Next() {
		return false, nil, solutions.Err()
	}
	var s = make(map[string]prolog.TermString)
	if err := solutions.Scan(&s); err != nil {
		return false, nil, err
	}
	var result = make(map[string]string)
	for k, v := range s {
		result[k] = string(v)
	}
	return true, result, nil
}
