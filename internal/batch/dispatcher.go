package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
)

// Dispatcher runs a Request against a resolved mapping.
type Dispatcher struct {
	Mapping  *registry.Mapping
	Operator *lifecycle.Operator
	NodesDir string
	Logger   *slog.Logger
	Tracer   trace.Tracer
}

// Apply processes every identifier in req and returns one Result per
// identifier. It never stops early; ctx cancellation surfaces as per-node
// errors from the git operator.
func (d *Dispatcher) Apply(ctx context.Context, req Request) *Report {
	report := &Report{Results: make([]Result, 0, req.Len())}
	for _, id := range req.IDs() {
		report.Results = append(report.Results, d.applyOne(ctx, req.Op(), id))
	}
	return report
}

func (d *Dispatcher) applyOne(ctx context.Context, op Operation, id string) (res Result) {
	ctx, span := d.tracer().Start(ctx, "batch.node", trace.WithAttributes(
		attribute.String("node", id),
		attribute.String("op", string(op)),
	))
	res = Result{ID: id, Op: op}

	defer func() {
		if r := recover(); r != nil {
			d.logger().Error("panic while processing node", "node", id, "op", op, "panic", r, "stack", string(debug.Stack()))
			res.Err = &lifecycle.OperationError{Op: string(op), Node: id, Err: fmt.Errorf("panic: %v", r)}
		}
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		} else {
			span.SetAttributes(attribute.String("outcome", res.Outcome.String()))
		}
		span.End()
	}()

	node, err := d.Mapping.Lookup(id)
	if err != nil {
		res.Err = err
		return res
	}

	res.Outcome, res.Err = d.dispatch(ctx, op, id, node)
	if res.Err != nil {
		d.logger().Debug("node step failed", "node", id, "op", op, "error", res.Err)
	}
	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, op Operation, id string, node registry.Node) (lifecycle.Outcome, error) {
	switch op {
	case OpInstall:
		return lifecycle.OutcomeApplied, d.Operator.Install(ctx, id, node)
	case OpUninstall:
		return lifecycle.OutcomeApplied, d.Operator.Uninstall(ctx, id, node)
	case OpUpdate:
		return lifecycle.OutcomeApplied, d.Operator.Update(ctx, id, node)
	case OpEnable, OpDisable:
		path, err := lifecycle.NodePath(d.NodesDir, id)
		if err != nil {
			return 0, &lifecycle.OperationError{Op: string(op), Node: id, Err: err}
		}
		if op == OpEnable {
			return d.Operator.Enable(path)
		}
		return d.Operator.Disable(path)
	default:
		return 0, fmt.Errorf("unknown operation %q", op)
	}
}

func (d *Dispatcher) tracer() trace.Tracer {
	if d.Tracer != nil {
		return d.Tracer
	}
	return otel.Tracer("github.com/toxicwind/ComfyUI-Manager/internal/batch")
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
