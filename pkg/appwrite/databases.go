package appwrite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"buzzy/log"
)

// GetDocument fetches a single document as a raw field map. Collections here
// are schema-loose, so callers decode the fields they care about.
func (c *Client) GetDocument(ctx context.Context, db, collection, id string) (map[string]any, error) {
	var doc map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(fmt.Sprintf("/v1/databases/%s/collections/%s/documents/%s", db, collection, id))
	if err != nil {
		return nil, fmt.Errorf("GetDocument request error: %w", err)
	}
	if err = c.checkResponse(resp, "GetDocument"); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) CreateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error) {
	var doc map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"documentId": id,
			"data":       fields,
		}).
		SetResult(&doc).
		Post(fmt.Sprintf("/v1/databases/%s/collections/%s/documents", db, collection))
	if err != nil {
		return nil, fmt.Errorf("CreateDocument request error: %w", err)
	}
	if err = c.checkResponse(resp, "CreateDocument"); err != nil {
		return nil, err
	}
	log.GetLogger().Debug("CreateDocument created",
		zap.String("collection", collection),
		zap.String("documentId", id))
	return doc, nil
}

func (c *Client) UpdateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error) {
	var doc map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"data": fields}).
		SetResult(&doc).
		Patch(fmt.Sprintf("/v1/databases/%s/collections/%s/documents/%s", db, collection, id))
	if err != nil {
		return nil, fmt.Errorf("UpdateDocument request error: %w", err)
	}
	if err = c.checkResponse(resp, "UpdateDocument"); err != nil {
		return nil, err
	}
	return doc, nil
}
