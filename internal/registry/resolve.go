package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/toxicwind/ComfyUI-Manager/internal/channel"
	"github.com/toxicwind/ComfyUI-Manager/internal/datasource"
)

// looseFileExts are file extensions of single-file nodes. Such locations are
// never clone sources.
var looseFileExts = []string{".py", ".js"}

// Resolver builds a Mapping for a channel and fetch mode.
type Resolver struct {
	Channels channel.Directory
	Source   datasource.Source
	Hosts    []string // recognized clone hosts, e.g. "github.com"
	Logger   *slog.Logger
	Tracer   trace.Tracer
}

// Resolve validates channelName and mode, fetches the registry document, and
// scans it into a Mapping. Channel and mode problems return a
// *ConfigurationError without touching the datasource.
func (r *Resolver) Resolve(ctx context.Context, channelName, mode string) (_ *Mapping, err error) {
	ctx, span := r.tracer().Start(ctx, "registry.resolve", trace.WithAttributes(
		attribute.String("channel", channelName),
		attribute.String("mode", mode),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	channels, err := r.Channels.Known()
	if err != nil {
		return nil, fmt.Errorf("loading channels: %w", err)
	}
	location, ok := channels[channelName]
	if !ok {
		return nil, &ConfigurationError{Field: "channel", Value: channelName, Allowed: channel.Names(channels)}
	}

	m, err := datasource.ParseMode(mode)
	if err != nil {
		return nil, &ConfigurationError{Field: "mode", Value: mode, Allowed: datasource.ModeNames()}
	}

	data, err := r.Source.Fetch(ctx, m, DocumentName, location)
	if err != nil {
		return nil, fmt.Errorf("fetching %s from channel %s: %w", DocumentName, channelName, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", DocumentName, err)
	}
	if !result.Valid {
		return nil, &DocumentError{Location: location, Issues: result.Issues}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", DocumentName, err)
	}

	mapping := BuildMapping(&doc, r.Hosts)
	r.logger().Debug("registry resolved", "channel", channelName, "mode", m, "nodes", mapping.Len())
	span.SetAttributes(attribute.Int("nodes", mapping.Len()))
	return mapping, nil
}

// BuildMapping registers every node under the identifier of each of its
// clone sources. Later nodes win when two derive the same identifier.
func BuildMapping(doc *Document, hosts []string) *Mapping {
	m := newMapping()
	for _, node := range doc.CustomNodes {
		for _, file := range node.Files {
			if !IsCloneSource(file, hosts) {
				continue
			}
			id := IdentifierFromURL(file)
			if !ValidIdentifier(id) {
				continue
			}
			m.set(id, node)
		}
	}
	return m
}

// IsCloneSource reports whether location points at a recognized hosting
// location and is not a loose script file.
func IsCloneSource(location string, hosts []string) bool {
	for _, ext := range looseFileExts {
		if strings.HasSuffix(location, ext) {
			return false
		}
	}
	for _, host := range hosts {
		if strings.Contains(location, host) {
			return true
		}
	}
	return false
}

// IdentifierFromURL returns the final path segment of location with a
// trailing slash and ".git" suffix removed.
// "https://github.com/alice/foo-nodes.git" -> "foo-nodes"
func IdentifierFromURL(location string) string {
	location = strings.TrimRight(location, "/")
	if i := strings.LastIndex(location, "/"); i >= 0 {
		location = location[i+1:]
	}
	return strings.TrimSuffix(location, ".git")
}

// ValidIdentifier reports whether id names a single directory entry: not
// empty, not "." or "..", and free of path separators.
func ValidIdentifier(id string) bool {
	switch id {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func (r *Resolver) tracer() trace.Tracer {
	if r.Tracer != nil {
		return r.Tracer
	}
	return otel.Tracer("github.com/toxicwind/ComfyUI-Manager/internal/registry")
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
