// Package mixer resolves a chat message into a mixed-emoji image URL.
//
// A resolution runs through a fixed sequence of states:
//
//	Start -> Encoding -> Probing -> Resolved(Found | NotFound)
//
// Input validation happens before Start: text that is not exactly two emoji
// plus optional whitespace never reaches the network. Failures past
// validation (an emoji with no encodable code points, every candidate
// missing or failing, a panic inside the prober) all resolve to NotFound;
// nothing escapes to the host.
package mixer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/emoji"
	"github.com/mmr-tortoise/emojimix/internal/hexcode"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Checker finds the first existing candidate. *probe.Prober implements it.
type Checker interface {
	Probe(ctx context.Context, candidates []model.CandidateURL) (model.CandidateURL, bool)
}

// Options tunes a Resolver.
type Options struct {
	// Deadline bounds a whole Mix call. Zero means no bound beyond the
	// prober's own timeouts and the caller's context.
	Deadline time.Duration
}

// state is a step of a single resolution.
type state int

const (
	stateStart state = iota
	stateEncoding
	stateProbing
	stateResolved
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateEncoding:
		return "encoding"
	case stateProbing:
		return "probing"
	case stateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Resolver turns text or emoji pairs into MixResults. It holds only
// read-only collaborators and is safe for concurrent use.
type Resolver struct {
	opts   Options
	gen    *catalog.Generator
	prober Checker
	logger *zap.Logger
}

// New creates a Resolver. A nil logger is replaced with a no-op logger.
func New(opts Options, gen *catalog.Generator, prober Checker, logger *zap.Logger) (*Resolver, error) {
	if gen == nil {
		return nil, errors.New("mixer: generator is required")
	}
	if prober == nil {
		return nil, errors.New("mixer: prober is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		opts:   opts,
		gen:    gen,
		prober: prober,
		logger: logger.Named("mixer"),
	}, nil
}

// Parse validates text as exactly two emoji with nothing but whitespace
// around them. On failure it returns the clusters it found and a
// *model.InputError carrying the status to report.
func Parse(text string) ([]model.EmojiCluster, error) {
	clusters := emoji.Extract(text)

	switch n := len(clusters); {
	case n < 2:
		return clusters, &model.InputError{Status: model.StatusNeedTwoEmoji, Count: n}
	case n > 2:
		return clusters, &model.InputError{Status: model.StatusTooManyEmoji, Count: n}
	}

	if rest := emoji.Remainder(text, clusters); rest != "" {
		return clusters, &model.InputError{Status: model.StatusExtraneousText, Count: 2, Remainder: rest}
	}
	return clusters, nil
}

// ResolveMix validates text and, when it holds exactly two emoji, resolves
// the pair. Input problems come back as the matching status without any
// network traffic.
func (r *Resolver) ResolveMix(ctx context.Context, text string) model.MixResult {
	log := r.logger.With(zap.String("request_id", uuid.NewString()))

	clusters, err := Parse(text)
	if err != nil {
		var inputErr *model.InputError
		if errors.As(err, &inputErr) {
			log.Info("input rejected",
				zap.Stringer("status", inputErr.Status),
				zap.Int("emoji", inputErr.Count),
			)
			return model.MixResult{
				Status:    inputErr.Status,
				Clusters:  clusters,
				Remainder: inputErr.Remainder,
			}
		}
		log.Error("unexpected parse failure", zap.Error(err))
		return model.NotFoundResult(clusters...)
	}

	return r.resolve(ctx, log, clusters[0], clusters[1])
}

// Mix resolves an already validated pair of emoji clusters.
func (r *Resolver) Mix(ctx context.Context, a, b model.EmojiCluster) model.MixResult {
	log := r.logger.With(zap.String("request_id", uuid.NewString()))
	return r.resolve(ctx, log, a, b)
}

// resolve drives one pair through the state machine. It never panics.
func (r *Resolver) resolve(ctx context.Context, log *zap.Logger, a, b model.EmojiCluster) (result model.MixResult) {
	current := stateStart
	advance := func(next state) {
		log.Debug("state transition", zap.Stringer("from", current), zap.Stringer("to", next))
		current = next
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("resolution panicked",
				zap.Stringer("state", current),
				zap.String("panic", fmt.Sprint(rec)),
				zap.Stack("stack"),
			)
			result = model.NotFoundResult(a, b)
		}
	}()

	if r.opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Deadline)
		defer cancel()
	}

	log.Info("mixing", zap.String("first", a.Text), zap.String("second", b.Text))

	advance(stateEncoding)
	hexA, err := hexcode.Encode(a)
	if err == nil {
		var hexB model.HexIdentifier
		hexB, err = hexcode.Encode(b)
		if err == nil {
			advance(stateProbing)
			result = r.probe(ctx, log, a, b, hexA, hexB)
			advance(stateResolved)
			return result
		}
	}

	if model.IsEncodingError(err) {
		log.Warn("emoji could not be encoded", zap.Error(err))
	} else {
		log.Error("encoding failed", zap.Error(err))
	}
	advance(stateResolved)
	return model.NotFoundResult(a, b)
}

func (r *Resolver) probe(ctx context.Context, log *zap.Logger, a, b model.EmojiCluster, hexA, hexB model.HexIdentifier) model.MixResult {
	candidates := r.gen.Generate(hexA, hexB)
	log.Debug("candidates generated",
		zap.String("hex1", hexA.String()),
		zap.String("hex2", hexB.String()),
		zap.Int("count", len(candidates)),
	)

	hit, ok := r.prober.Probe(ctx, candidates)
	if !ok {
		log.Info("no mix found", zap.String("first", a.Text), zap.String("second", b.Text))
		return model.NotFoundResult(a, b)
	}

	log.Info("mix found", zap.String("url", hit.URL), zap.String("revision", string(hit.Revision)))
	return model.FoundResult(hit.URL, a, b)
}
