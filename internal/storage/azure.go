package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// Container wraps one Azure Blob Storage container: flat listing by prefix,
// downloads, existence checks, tag queries and blob metadata reads.
type Container struct {
	client *container.Client
}

// NewContainer builds a Container client for name under accountURL.
func NewContainer(accountURL, name string, cred azcore.TokenCredential) (*Container, error) {
	if accountURL == "" || name == "" {
		return nil, fmt.Errorf("storage: account URL and container name are required")
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: build client: %w", err)
	}
	return &Container{client: client.ServiceClient().NewContainerClient(name)}, nil
}

// ListBlobs returns the names of every blob under prefix, in listing order.
func (c *Container) ListBlobs(ctx context.Context, prefix string) ([]string, error) {
	pager := c.client.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{Prefix: &prefix})
	var names []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: list %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

// Download reads a blob's full contents.
func (c *Container) Download(ctx context.Context, name string) ([]byte, error) {
	resp, err := c.client.NewBlobClient(name).DownloadStream(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: download %q: %w", name, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", name, err)
	}
	return data, nil
}

// Exists reports whether a blob with the given name is present.
func (c *Container) Exists(ctx context.Context, name string) (bool, error) {
	_, err := c.client.NewBlobClient(name).GetProperties(ctx, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: head %q: %w", name, err)
	}
	return true, nil
}

// FilterByTags runs a blob tag query and returns one page of matching blob
// names plus the continuation marker for the next page ("" when exhausted).
func (c *Container) FilterByTags(ctx context.Context, where string, pageSize int32, marker string) ([]string, string, error) {
	opts := &container.FilterBlobsOptions{MaxResults: &pageSize}
	if marker != "" {
		opts.Marker = &marker
	}
	resp, err := c.client.FilterBlobs(ctx, where, opts)
	if err != nil {
		return nil, "", fmt.Errorf("storage: filter blobs: %w", err)
	}
	names := make([]string, 0, len(resp.Blobs))
	for _, item := range resp.Blobs {
		if item.Name != nil {
			names = append(names, *item.Name)
		}
	}
	next := ""
	if resp.NextMarker != nil {
		next = *resp.NextMarker
	}
	return names, next, nil
}

// BlobMetadata returns a blob's user-defined metadata key-value pairs.
func (c *Container) BlobMetadata(ctx context.Context, name string) (map[string]string, error) {
	resp, err := c.client.NewBlobClient(name).GetProperties(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: properties %q: %w", name, err)
	}
	meta := make(map[string]string, len(resp.Metadata))
	for key, val := range resp.Metadata {
		if val != nil {
			meta[key] = *val
		}
	}
	return meta, nil
}
