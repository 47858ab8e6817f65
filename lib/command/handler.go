// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
)

// Handler runs a command for one message. A non-nil error is always an
// *Error when the handler was built with Func0..Func5.
type Handler interface {
	Invoke(ctx context.Context, message *Message) error
}

// HandlerFunc adapts a plain function to Handler. The function receives
// the raw message and does its own extraction.
type HandlerFunc func(ctx context.Context, message *Message) error

// Invoke implements Handler.
func (f HandlerFunc) Invoke(ctx context.Context, message *Message) error {
	return f(ctx, message)
}

// Func0 adapts a handler that takes no extracted parameters.
func Func0(handler func(ctx context.Context) error) Handler {
	return HandlerFunc(func(ctx context.Context, _ *Message) error {
		return toInvocationError(handler(ctx))
	})
}

// Func1 adapts a handler taking one extracted parameter.
func Func1[P1 any, PT1 Extractor[P1]](handler func(context.Context, P1) error) Handler {
	return HandlerFunc(func(ctx context.Context, message *Message) error {
		parts := newParts(message)
		p1, err := Extract[P1, PT1](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		return toInvocationError(handler(ctx, p1))
	})
}

// Func2 adapts a handler taking two extracted parameters.
func Func2[P1 any, P2 any, PT1 Extractor[P1], PT2 Extractor[P2]](
	handler func(context.Context, P1, P2) error,
) Handler {
	return HandlerFunc(func(ctx context.Context, message *Message) error {
		parts := newParts(message)
		p1, err := Extract[P1, PT1](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p2, err := Extract[P2, PT2](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		return toInvocationError(handler(ctx, p1, p2))
	})
}

// Func3 adapts a handler taking three extracted parameters.
func Func3[P1 any, P2 any, P3 any, PT1 Extractor[P1], PT2 Extractor[P2], PT3 Extractor[P3]](
	handler func(context.Context, P1, P2, P3) error,
) Handler {
	return HandlerFunc(func(ctx context.Context, message *Message) error {
		parts := newParts(message)
		p1, err := Extract[P1, PT1](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p2, err := Extract[P2, PT2](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p3, err := Extract[P3, PT3](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		return toInvocationError(handler(ctx, p1, p2, p3))
	})
}

// Func4 adapts a handler taking four extracted parameters.
func Func4[P1 any, P2 any, P3 any, P4 any, PT1 Extractor[P1], PT2 Extractor[P2], PT3 Extractor[P3], PT4 Extractor[P4]](
	handler func(context.Context, P1, P2, P3, P4) error,
) Handler {
	return HandlerFunc(func(ctx context.Context, message *Message) error {
		parts := newParts(message)
		p1, err := Extract[P1, PT1](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p2, err := Extract[P2, PT2](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p3, err := Extract[P3, PT3](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p4, err := Extract[P4, PT4](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		return toInvocationError(handler(ctx, p1, p2, p3, p4))
	})
}

// Func5 adapts a handler taking five extracted parameters.
func Func5[P1 any, P2 any, P3 any, P4 any, P5 any, PT1 Extractor[P1], PT2 Extractor[P2], PT3 Extractor[P3], PT4 Extractor[P4], PT5 Extractor[P5]](
	handler func(context.Context, P1, P2, P3, P4, P5) error,
) Handler {
	return HandlerFunc(func(ctx context.Context, message *Message) error {
		parts := newParts(message)
		p1, err := Extract[P1, PT1](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p2, err := Extract[P2, PT2](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p3, err := Extract[P3, PT3](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p4, err := Extract[P4, PT4](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		p5, err := Extract[P5, PT5](ctx, parts)
		if err != nil {
			return toInvocationError(err)
		}
		return toInvocationError(handler(ctx, p1, p2, p3, p4, p5))
	})
}
