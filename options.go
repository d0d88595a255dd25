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

import "log/slog"

// Options configures the mutable containers, TreeRangeSet and TreeRangeMap.
type Options struct {
	// Logger enables debug logging of mutations.
	// When nil, no logging is performed.
	Logger *slog.Logger
}

// Option configures Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{}
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// WithLogger sets a structured logger for mutation diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	set := ranges.NewTreeRangeSet(ranges.Natural[int](), ranges.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func (o Options) debug(msg string, args ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debug(msg, args...)
}
