package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/JaimeStill/dossier/pkg/lifecycle"
)

type azure struct {
	client    *azblob.Client
	container string
	pattern   string
	logger    *slog.Logger
}

// newAzure builds the client from a connection string when present,
// otherwise from the account URL and the default Azure credential chain.
func newAzure(cfg *Config, logger *slog.Logger) (*azure, error) {
	var (
		client *azblob.Client
		err    error
	)

	if cfg.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("create storage credential: %w", credErr)
		}
		client, err = azblob.NewClient(cfg.AccountURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "**"
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		pattern:   pattern,
		logger:    logger,
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system", "container", a.container)

	lc.OnStartup(func() error {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return fmt.Errorf("initialize storage container %s: %w", a.container, err)
		}

		a.logger.Info("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) List(ctx context.Context, prefix, marker string, maxResults int32) (*BlobList, error) {
	opts := &container.ListBlobsFlatOptions{
		MaxResults: to.Ptr(maxResults),
	}
	if prefix != "" {
		opts.Prefix = to.Ptr(prefix)
	}
	if marker != "" {
		opts.Marker = to.Ptr(marker)
	}

	result := &BlobList{Blobs: []BlobMeta{}}

	pager := a.client.NewListBlobsFlatPager(a.container, opts)
	if !pager.More() {
		return result, nil
	}

	resp, err := pager.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	if resp.Segment != nil {
		for _, item := range resp.Segment.BlobItems {
			result.Blobs = append(result.Blobs, metaFromItem(item))
		}
	}
	if resp.NextMarker != nil {
		result.NextMarker = *resp.NextMarker
	}

	return result, nil
}

func (a *azure) Find(ctx context.Context, key string) (*BlobMeta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blob %s: %w", key, err)
	}

	meta := BlobMeta{
		Name:          key,
		ContentType:   deref(resp.ContentType, defaultContentType),
		ContentLength: deref(resp.ContentLength, 0),
	}
	if resp.LastModified != nil {
		meta.LastModified = resp.LastModified.UTC()
	}
	if resp.ETag != nil {
		meta.ETag = string(*resp.ETag)
	}

	return &meta, nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, a.container, key, reader, opts)
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	return resp.Body, nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}

// Walk pages through the whole container. Blob listings are already returned
// in lexical order, so no sort is needed.
func (a *azure) Walk(ctx context.Context, fn func(BlobMeta) error) error {
	pager := a.client.NewListBlobsFlatPager(a.container, nil)

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("walk blobs: %w", err)
		}
		if resp.Segment == nil {
			continue
		}

		for _, item := range resp.Segment.BlobItems {
			meta := metaFromItem(item)
			if ok, _ := doublestar.Match(a.pattern, meta.Name); !ok {
				continue
			}
			if err := fn(meta); err != nil {
				return err
			}
		}
	}

	return nil
}

func (a *azure) blobClient(key string) *blob.Client {
	return a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)
}

func metaFromItem(item *container.BlobItem) BlobMeta {
	meta := BlobMeta{Name: deref(item.Name, "")}

	if props := item.Properties; props != nil {
		meta.ContentType = deref(props.ContentType, defaultContentType)
		meta.ContentLength = deref(props.ContentLength, 0)
		if props.LastModified != nil {
			meta.LastModified = props.LastModified.UTC()
		}
		if props.ETag != nil {
			meta.ETag = string(*props.ETag)
		}
	}

	return meta
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
