package main

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	ErrNoInput      = errors.New("no input provided")
	ErrInvalidInput = errors.New("invalid input")
)

// ParseValues 인자를 양의 32비트 정수로 바꾼다. 하나라도 잘못되면 전체 실패.
func ParseValues(args []string) ([]int32, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	values := make([]int32, 0, len(args))
	for _, tok := range args {
		v, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseValue(tok string) (int32, error) {
	if tok == "" {
		return 0, errors.Wrap(ErrInvalidInput, "empty token")
	}
	// 부호, 공백, 16진수 표기 등은 받지 않는다.
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, errors.Wrapf(ErrInvalidInput, "%q is not a positive integer", tok)
		}
	}

	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || n < 1 || n > math.MaxInt32 {
		return 0, errors.Wrapf(ErrInvalidInput, "%q out of range [1, %d]", tok, math.MaxInt32)
	}
	return int32(n), nil
}
