package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(method string, req, resp any) error {
	return decodeError(c.client.Call(ServiceName+"."+method, req, resp))
}

// CreateEntry stores a new entry.
func (c *Client) CreateEntry(input EntryInput) (*Entry, error) {
	var resp CreateEntryResponse
	if err := c.call("CreateEntry", CreateEntryRequest{Entry: input}, &resp); err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

// GetEntry fetches an entry. A missing entry returns nil without error.
func (c *Client) GetEntry(id string) (*Entry, error) {
	var resp GetEntryResponse
	if err := c.call("GetEntry", GetEntryRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, nil
	}
	return resp.Entry, nil
}

// UpdateEntry replaces an existing entry.
func (c *Client) UpdateEntry(entry Entry) (*Entry, error) {
	var resp UpdateEntryResponse
	if err := c.call("UpdateEntry", UpdateEntryRequest{Entry: entry}, &resp); err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

// DeleteEntry removes an entry and reports whether it existed.
func (c *Client) DeleteEntry(id string) (bool, error) {
	var resp DeleteEntryResponse
	if err := c.call("DeleteEntry", DeleteEntryRequest{ID: id}, &resp); err != nil {
		return false, err
	}
	return resp.Existed, nil
}

// ListEntries returns entries matching the filter.
func (c *Client) ListEntries(req ListEntriesRequest) ([]Entry, error) {
	var resp ListEntriesResponse
	if err := c.call("ListEntries", req, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// GetImageForEntry returns the cover for an entry, fetching it if needed.
func (c *Client) GetImageForEntry(entryID string) (*Image, error) {
	var resp ImageResponse
	if err := c.call("GetImageForEntry", GetImageForEntryRequest{EntryID: entryID}, &resp); err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

// GetImageByLink returns the cover for a link, fetching it if needed.
func (c *Client) GetImageByLink(link string) (*Image, error) {
	var resp ImageResponse
	if err := c.call("GetImageByLink", GetImageByLinkRequest{Link: link}, &resp); err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

// ListImages returns cached cover metadata.
func (c *Client) ListImages() ([]ImageInfo, error) {
	var resp ListImagesResponse
	if err := c.call("ListImages", ListImagesRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// ClearImages empties the image cache.
func (c *Client) ClearImages() (int64, error) {
	var resp ClearImagesResponse
	if err := c.call("ClearImages", ClearImagesRequest{}, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

// ExportEntries renders all entries as an export document.
func (c *Client) ExportEntries() (*ExportEntriesResponse, error) {
	var resp ExportEntriesResponse
	if err := c.call("ExportEntries", ExportEntriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImportEntries creates entries from an export document.
func (c *Client) ImportEntries(document []byte) ([]Entry, error) {
	var resp ImportEntriesResponse
	if err := c.call("ImportEntries", ImportEntriesRequest{Document: string(document)}, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
