package annotator

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/legacy"
	"github.com/erraggy/oasexample/oaserrors"
	"github.com/erraggy/oasexample/parser"
)

// convertLegacy fetches the API declarations named by a Swagger 1.x
// resource listing, repairs their array item references, and converts the
// set into one Swagger 2.0 document.
func (r *run) convertLegacy(listing *document.Object, location, version string) (*document.Object, error) {
	locations, err := declarationLocations(listing, location, version)
	if err != nil {
		return nil, err
	}

	decls, err := r.fetchDeclarations(locations)
	if err != nil {
		return nil, err
	}
	r.result.DeclarationCount += len(decls)

	for i, decl := range decls {
		models, _ := decl.Object("models")
		if n := legacy.RepairTypeReferences(decl, models); n > 0 {
			r.log.Debug("repaired array item references", "location", locations[i], "count", n)
		}
	}

	conv := r.a.converter()
	var converted *document.Object
	if ic, ok := conv.(legacy.IssueConverter); ok {
		res, convErr := ic.ConvertWithIssues(r.ctx, listing, decls)
		if convErr == nil {
			converted = res.Document
			r.result.Issues = append(r.result.Issues, res.Issues...)
		}
		err = convErr
	} else {
		converted, err = conv.Convert(r.ctx, listing, decls)
	}
	if err != nil {
		var ce *oaserrors.ConversionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &oaserrors.ConversionError{
			SourceVersion: version,
			TargetVersion: legacy.TargetVersion,
			Message:       "conversion failed",
			Cause:         err,
		}
	}
	if converted == nil {
		return nil, &oaserrors.ConversionError{
			SourceVersion: version,
			TargetVersion: legacy.TargetVersion,
			Message:       "converter returned no document",
		}
	}

	r.log.Debug("converted legacy document", "source", location, "declarations", len(decls))
	return converted, nil
}

// declarationLocations resolves every apis[].path of listing against base.
func declarationLocations(listing *document.Object, base, version string) ([]string, error) {
	v, ok := listing.Get("apis")
	if !ok || v == nil {
		return nil, nil
	}
	entries, ok := v.([]any)
	if !ok {
		return nil, &oaserrors.ConversionError{
			SourceVersion: version,
			TargetVersion: legacy.TargetVersion,
			Path:          "apis",
			Message:       fmt.Sprintf("expected a sequence, got %s", document.TypeName(v)),
		}
	}

	locations := make([]string, len(entries))
	for i, raw := range entries {
		entry, _ := raw.(*document.Object)
		path, _ := entry.String("path")
		if path == "" {
			return nil, &oaserrors.ConversionError{
				SourceVersion: version,
				TargetVersion: legacy.TargetVersion,
				Path:          fmt.Sprintf("apis[%d].path", i),
				Message:       "api entry has no path",
			}
		}
		loc, err := parser.ResolveLocation(base, path)
		if err != nil {
			return nil, err
		}
		locations[i] = loc
	}
	return locations, nil
}

// fetchDeclarations loads all locations concurrently. The first failure
// cancels the remaining fetches.
func (r *run) fetchDeclarations(locations []string) ([]*document.Object, error) {
	fetcher := r.a.fetcher()
	decls := make([]*document.Object, len(locations))

	g, ctx := errgroup.WithContext(r.ctx)
	g.SetLimit(r.a.maxConcurrency())
	for i, loc := range locations {
		g.Go(func() error {
			r.log.Debug("fetching api declaration", "location", loc)
			pr, err := fetcher.Fetch(ctx, loc)
			if err != nil {
				var re *oaserrors.RetrievalError
				if errors.As(err, &re) {
					return err
				}
				return &oaserrors.RetrievalError{Location: loc, Message: "failed to load api declaration", Cause: err}
			}
			if pr == nil || pr.Document == nil {
				return &oaserrors.RetrievalError{Location: loc, Message: "fetcher returned no document"}
			}
			decls[i] = pr.Document
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decls, nil
}
