package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"heli-ticketing/internal/config"
	"heli-ticketing/internal/logger"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client mirrors tickets and manifests into a SharePoint drive via the
// Microsoft Graph API. Every failure is recorded in a standing error log and
// swallowed; uploads are best-effort by contract and never retried.
type Client struct {
	cfg        config.SharePointConfig
	httpClient *http.Client
	errorLog   string
	logger     *logger.Logger
}

func NewClient(cfg config.SharePointConfig, outboxDir string, log *logger.Logger) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	return &Client{
		cfg:        cfg,
		httpClient: creds.Client(context.Background()),
		errorLog:   filepath.Join(outboxDir, "sharepoint_upload_errors.log"),
		logger:     log,
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.Enabled()
}

// EnsureFolder checks the folder exists in the drive, creating it when
// missing. A 409 from the create call means someone else got there first and
// counts as success.
func (c *Client) EnsureFolder(ctx context.Context, folderPath string) bool {
	getURL := fmt.Sprintf("%s/drives/%s/root:/%s", graphBaseURL, c.cfg.DriveID, folderPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err == nil {
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusOK {
			return true
		}
	}

	parent := filepath.ToSlash(filepath.Dir(folderPath))
	if parent == "." {
		parent = ""
	}
	name := filepath.Base(folderPath)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":                              name,
		"folder":                            map[string]interface{}{},
		"@microsoft.graph.conflictBehavior": "fail",
	})

	createURL := fmt.Sprintf("%s/drives/%s/root:/%s:/children", graphBaseURL, c.cfg.DriveID, parent)
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, createURL, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err = c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("UPLOAD", fmt.Sprintf("Failed to create SharePoint folder %s: %v", folderPath, err))
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusConflict:
		return true
	}
	return false
}

// Upload puts the file under <base>/<flightDate>/ in the drive. Returns
// false on any failure after appending to the error log; callers never see
// an error.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, flightDate string) bool {
	folderPath := c.cfg.BaseFolder + "/" + flightDate
	c.EnsureFolder(ctx, c.cfg.BaseFolder)
	c.EnsureFolder(ctx, folderPath)

	uploadURL := fmt.Sprintf("%s/drives/%s/root:/%s/%s:/content",
		graphBaseURL, c.cfg.DriveID, folderPath, filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		c.recordFailure(filename, err.Error())
		return false
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("UPLOAD", fmt.Sprintf("SharePoint upload exception: %v", err))
		c.recordFailure(filename, err.Error())
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		c.logger.LogUpload(filename, "Uploaded to SharePoint")
		return true
	}

	detail := fmt.Sprintf("%d %s", resp.StatusCode, string(body))
	c.logger.Error("UPLOAD", fmt.Sprintf("SharePoint upload failed: %s", detail))
	c.recordFailure(filename, detail)
	return false
}

// recordFailure appends to the standing error log. Nothing reads this back;
// it exists for the operator.
func (c *Client) recordFailure(filename, detail string) {
	f, err := os.OpenFile(c.errorLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s: %s - %s\n", time.Now().Format(time.RFC3339), filename, detail)
}
