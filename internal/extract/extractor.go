package extract

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"duitbot/internal/classify"
	"duitbot/internal/dates"
	"duitbot/internal/logger"
)

// Extractor turns free-form Indonesian text into candidate transactions. It
// prefers the model and degrades to the local parser, never surfacing an
// error for the text path.
type Extractor struct {
	completer Completer
	cls       *classify.Classifier
	loc       *time.Location
}

// New creates an extractor. A nil location means UTC.
func New(completer Completer, cls *classify.Classifier, loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.UTC
	}
	return &Extractor{completer: completer, cls: cls, loc: loc}
}

// Today returns the current date in the extractor's timezone.
func (e *Extractor) Today() civil.Date {
	return dates.Today(e.loc)
}

// ExtractOne parses a single line of text. The local parse is computed
// first and kept for reconciliation; when the model path fails for any
// reason the local parse is returned instead.
func (e *Extractor) ExtractOne(ctx context.Context, text string) Candidate {
	log := logger.FromContext(ctx)
	today := dates.Today(e.loc)
	local := ParseLocal(e.cls, text, today)

	prompt := buildTransactionPrompt(text, today)
	res := CallWithRetry(ctx, log, TextRetryPolicy, func(ctx context.Context) (string, error) {
		return e.completer.Complete(ctx, prompt)
	})
	if res.Outcome != Succeeded {
		log.Warn().Err(res.Err).Msg("model extraction failed, using local parser")
		return local
	}

	payload, err := decodeObject(res.Text)
	if err != nil {
		log.Error().Err(err).Msg("model returned malformed JSON, using local parser")
		return local
	}

	return reconcile(payload, local, today)
}

// ExtractAll splits multi-line input and parses each line sequentially,
// keeping the lines that resolved to an amount. A bad line is logged and
// skipped, never aborting the batch.
func (e *Extractor) ExtractAll(ctx context.Context, text string) []Candidate {
	log := logger.FromContext(ctx)

	var out []Candidate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c := e.ExtractOne(ctx, line)
		if !c.HasAmount {
			log.Info().Str("line", line).Msg("skipping line without a resolvable amount")
			continue
		}
		out = append(out, c)
	}
	return out
}
