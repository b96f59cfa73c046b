package queryio

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/profile-finder/internal/model"
)

// DecodeJSONArray decodes a JSON array element by element, sending each to a
// channel. Both channels are closed when processing completes.
func DecodeJSONArray[T any](ctx context.Context, r io.Reader) (<-chan T, <-chan error) {
	outCh := make(chan T, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		decoder := json.NewDecoder(r)

		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			errCh <- eris.Wrap(err, "json: read opening token")
			return
		}

		delim, ok := tok.(json.Delim)
		if !ok || delim != '[' {
			errCh <- eris.Errorf("json: expected '[', got %v", tok)
			return
		}

		for decoder.More() {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}

			var item T
			if err := decoder.Decode(&item); err != nil {
				errCh <- eris.Wrap(err, "json: decode element")
				return
			}

			select {
			case outCh <- item:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}
		}

		if _, err := decoder.Token(); err != nil && err != io.EOF {
			errCh <- eris.Wrap(err, "json: read closing token")
		}
	}()

	return outCh, errCh
}

// ReadJSON reads a JSON array of query objects.
func ReadJSON(ctx context.Context, r io.Reader) ([]model.Query, error) {
	outCh, errCh := DecodeJSONArray[model.Query](ctx, r)

	var out []model.Query
	for q := range outCh {
		out = append(out, q)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return out, nil
}

// ReadYAML reads a YAML sequence of query mappings, or a mapping with a
// "queries" key holding one.
func ReadYAML(r io.Reader) ([]model.Query, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "yaml: read")
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, eris.Wrap(err, "yaml: parse")
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var out []model.Query
	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapped struct {
			Queries []model.Query `yaml:"queries"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, eris.Wrap(err, "yaml: decode queries")
		}
		return wrapped.Queries, nil
	}
	if err := root.Decode(&out); err != nil {
		return nil, eris.Wrap(err, "yaml: decode queries")
	}
	return out, nil
}
