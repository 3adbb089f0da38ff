package publisher

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"

    androidpublisher "google.golang.org/api/androidpublisher/v3"
    "google.golang.org/api/googleapi"

    "play-probe/internal/models"
)

type editsListResponse struct {
    Edits []*androidpublisher.AppEdit `json:"edits"`
}

// ListEdits lists the pending edits of a package. The generated client has no
// binding for this call, so the request goes through the same authenticated
// transport by hand. Order is whatever the service returns.
func (c *Client) ListEdits(ctx context.Context, packageName string) ([]models.Edit, error) {
    params := url.Values{}
    params.Set("alt", "json")
    params.Set("prettyPrint", "false")
    urls := googleapi.ResolveRelative(c.basePath, "androidpublisher/v3/applications/{packageName}/edits")
    urls += "?" + params.Encode()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, urls, nil)
    if err != nil {
        return nil, err
    }
    googleapi.Expand(req.URL, map[string]string{"packageName": packageName})

    res, err := c.hc.Do(req)
    if err != nil {
        return nil, err
    }
    defer googleapi.CloseBody(res)
    if err := googleapi.CheckResponse(res); err != nil {
        return nil, err
    }

    var body editsListResponse
    if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
        return nil, fmt.Errorf("decode edits list: %w", err)
    }
    out := []models.Edit{}
    for _, e := range body.Edits {
        if e == nil {
            continue
        }
        out = append(out, toEdit(e))
    }
    return out, nil
}

func (c *Client) InsertEdit(ctx context.Context, packageName string) (models.Edit, error) {
    e, err := c.srv.Edits.Insert(packageName, &androidpublisher.AppEdit{}).Context(ctx).Do()
    if err != nil {
        return models.Edit{}, err
    }
    return toEdit(e), nil
}

func (c *Client) GetEdit(ctx context.Context, packageName, editID string) (models.Edit, error) {
    e, err := c.srv.Edits.Get(packageName, editID).Context(ctx).Do()
    if err != nil {
        return models.Edit{}, err
    }
    return toEdit(e), nil
}

func (c *Client) DeleteEdit(ctx context.Context, packageName, editID string) error {
    return c.srv.Edits.Delete(packageName, editID).Context(ctx).Do()
}

// CommitEdit publishes the edit. The service owns the edit lifecycle; nothing
// is retried or rolled back here.
func (c *Client) CommitEdit(ctx context.Context, packageName, editID string) (models.Edit, error) {
    e, err := c.srv.Edits.Commit(packageName, editID).Context(ctx).Do()
    if err != nil {
        return models.Edit{}, err
    }
    return toEdit(e), nil
}

// ListReviews returns the number of reviews on the first page.
func (c *Client) ListReviews(ctx context.Context, packageName string) (int, error) {
    resp, err := c.srv.Reviews.List(packageName).Context(ctx).Do()
    if err != nil {
        return 0, err
    }
    return len(resp.Reviews), nil
}

func toEdit(e *androidpublisher.AppEdit) models.Edit {
    return models.Edit{ID: e.Id, ExpiryTimeSeconds: e.ExpiryTimeSeconds}
}
