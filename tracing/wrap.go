package tracing

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Func is an operation that runs with a traced context.
type Func func(ctx context.Context) error

// Trace runs fn inside ContinueOrStart(ctx, name) and ends the scope with the
// error fn returns. A panic in fn is recorded on the spans and re-raised.
func Trace(ctx context.Context, name string, fn Func) error {
	ctx, scope := ContinueOrStart(ctx, name)
	return runErr(ctx, scope, fn)
}

// TraceValue is Trace for operations that return a value.
func TraceValue[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, scope := ContinueOrStart(ctx, name)
	return run(ctx, scope, fn)
}

// NewTrace runs fn inside StartRoot(ctx, name).
func NewTrace(ctx context.Context, name string, fn Func) error {
	ctx, scope := StartRoot(ctx, name)
	return runErr(ctx, scope, fn)
}

// NewSampledTrace runs fn inside StartSampledRoot(ctx, name).
func NewSampledTrace(ctx context.Context, name string, fn Func) error {
	ctx, scope := StartSampledRoot(ctx, name)
	return runErr(ctx, scope, fn)
}

// NoTrace suppresses monitoring sampling for the current transaction and
// runs fn with ctx unchanged.
func NoTrace(ctx context.Context, fn Func) error {
	SuppressSampling(ctx)
	return fn(ctx)
}

// Wrap returns fn traced with Trace under its qualified function name.
func Wrap(fn Func) Func {
	name := FuncName(fn)
	return func(ctx context.Context) error {
		return Trace(ctx, name, fn)
	}
}

// WrapNew returns fn traced with NewTrace under its qualified function name.
func WrapNew(fn Func) Func {
	name := FuncName(fn)
	return func(ctx context.Context) error {
		return NewTrace(ctx, name, fn)
	}
}

// WrapNewSampled returns fn traced with NewSampledTrace under its qualified
// function name.
func WrapNewSampled(fn Func) Func {
	name := FuncName(fn)
	return func(ctx context.Context) error {
		return NewSampledTrace(ctx, name, fn)
	}
}

// FuncName returns the package-qualified name of fn, such as
// "example.com/app/jobs.(*Runner).Run". It returns "" for nil or non-function
// values.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return strings.TrimSuffix(f.Name(), "-fm")
}

func runErr(ctx context.Context, scope *Scope, fn Func) error {
	_, err := run(ctx, scope, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func run[T any](ctx context.Context, scope *Scope, fn func(context.Context) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			scope.End(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		scope.End(err)
	}()
	return fn(ctx)
}
