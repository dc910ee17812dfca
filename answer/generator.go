// Copyright 2025 Poiesic Systems
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


package answer

import (
	"context"
	"log/slog"

	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/core"
)

// Generator produces grounded answers from a question and its authoritative
// document set. It wraps an ai.AnswerGenerator, adding context assembly and
// citation validation.
type Generator struct {
	generator ai.AnswerGenerator
	logger    *slog.Logger
}

// NewGenerator creates a new answer generator.
func NewGenerator(generator ai.AnswerGenerator) (*Generator, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &Generator{
		generator: generator,
		logger:    slog.Default().With("component", "answer"),
	}, nil
}

// Generate builds the grounding context from docs and asks the model for a
// structured answer. Citations pointing at documents that were not supplied
// are dropped with a warning; the model cannot introduce sources. Provider
// and schema failures propagate to the caller unmodified.
func (g *Generator) Generate(ctx context.Context, question string, docs []*core.Document) (core.Answer, error) {
	contextBlock := BuildContext(docs)

	g.logger.Info("generating answer", "documents", len(docs))
	result, err := g.generator.Generate(ctx, question, contextBlock)
	if err != nil {
		return core.Answer{}, err
	}

	result.CitedSources = g.validateCitations(result.CitedSources, docs)
	return result, nil
}

// validateCitations keeps only citations naming a supplied document.
func (g *Generator) validateCitations(cited []string, docs []*core.Document) []string {
	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		known[doc.Source] = true
	}

	valid := make([]string, 0, len(cited))
	for _, source := range cited {
		if !known[source] {
			g.logger.Warn("dropping citation of unknown document", "source", source)
			continue
		}
		valid = append(valid, source)
	}
	return valid
}
