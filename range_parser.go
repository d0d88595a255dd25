// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ranges

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	negativeInfinityToken = "-inf"
	positiveInfinityToken = "+inf"
)

// ParseRange parses the interval notation produced by Range.String.
//
// Supported syntax:
//   - Closed or open edges: "[1..4]", "(1..4)", "[1..4)", "(1..4]"
//   - Unbounded edges: "(-inf..4]", "[1..+inf)", "(-inf..+inf)"
//
// Endpoints are converted with parseValue and must not themselves contain "..".
//
// Examples:
//
//	ParseRange(ranges.Natural[int](), "[1..4)", strconv.Atoi)
//	ParseRange(ranges.Natural[string](), "(a..m]", func(s string) (string, error) { return s, nil })
func ParseRange[T any](order Ordering[T], s string, parseValue func(string) (T, error)) (Range[T], error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return Range[T]{}, errors.Wrapf(ErrParse, "%q is too short", s)
	}

	open, closing := s[0], s[len(s)-1]
	if open != '[' && open != '(' {
		return Range[T]{}, errors.Wrapf(ErrParse, "%q must start with '[' or '('", s)
	}
	if closing != ']' && closing != ')' {
		return Range[T]{}, errors.Wrapf(ErrParse, "%q must end with ']' or ')'", s)
	}

	body := s[1 : len(s)-1]
	lowerText, upperText, ok := strings.Cut(body, "..")
	if !ok {
		return Range[T]{}, errors.Wrapf(ErrParse, "%q is missing the \"..\" separator", s)
	}
	lowerText, upperText = strings.TrimSpace(lowerText), strings.TrimSpace(upperText)

	lower, err := parseEdge(lowerText, open == '[', negativeInfinityToken, belowAll[T](), lowerCut[T], parseValue)
	if err != nil {
		return Range[T]{}, errors.Wrapf(err, "lower bound of %q", s)
	}
	upper, err := parseEdge(upperText, closing == ']', positiveInfinityToken, aboveAll[T](), upperCut[T], parseValue)
	if err != nil {
		return Range[T]{}, errors.Wrapf(err, "upper bound of %q", s)
	}

	return order.create(lower, upper)
}

// parseEdge parses one endpoint of a range.
func parseEdge[T any](
	text string,
	closed bool,
	infinityToken string,
	infinity cut[T],
	toCut func(T, BoundType) cut[T],
	parseValue func(string) (T, error),
) (cut[T], error) {
	if text == "" {
		return cut[T]{}, errors.Wrap(ErrParse, "missing endpoint")
	}
	if text == infinityToken {
		if closed {
			return cut[T]{}, errors.Wrapf(ErrParse, "%s cannot be a closed bound", text)
		}
		return infinity, nil
	}
	v, err := parseValue(text)
	if err != nil {
		return cut[T]{}, errors.Wrapf(ErrParse, "endpoint %q: %v", text, err)
	}
	kind := BoundTypeOpen
	if closed {
		kind = BoundTypeClosed
	}
	return toCut(v, kind), nil
}

// ParseRangeSet parses the notation produced by RangeSet.String, such as
// "{[1..4)[6..8]}" or "{}". The ranges may be given in any order and may overlap;
// the result is their union.
func ParseRangeSet[T any](order Ordering[T], s string, parseValue func(string) (T, error)) (*ImmutableRangeSet[T], error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, errors.Wrapf(ErrParse, "%q must be enclosed in braces", s)
	}

	builder := NewImmutableRangeSetBuilder(order)
	rest := strings.TrimSpace(s[1 : len(s)-1])
	for rest != "" {
		end := strings.IndexAny(rest, "])")
		if end < 0 {
			return nil, errors.Wrapf(ErrParse, "unterminated range in %q", s)
		}
		r, err := ParseRange(order, rest[:end+1], parseValue)
		if err != nil {
			return nil, err
		}
		builder.Add(r)
		rest = strings.TrimLeft(rest[end+1:], " ,")
	}

	return builder.Build(), nil
}
