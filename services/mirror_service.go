// file: services/mirror_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kuznetsova-anastasiia/next-level/config"
	"github.com/kuznetsova-anastasiia/next-level/mappers"
)

// MirrorRecord 镜像表里的一行：记录 id + 字段
type MirrorRecord struct {
	ID     string               `json:"id"`
	Fields mappers.MirrorFields `json:"fields"`
}

// MirrorClient 外部镜像表的访问面（Airtable 风格的 REST API）。
// 工作人员会直接在镜像表里改 status/level，所以既有推也有拉
type MirrorClient interface {
	Create(fields mappers.MirrorFields) (string, error)
	Update(id string, fields mappers.MirrorFields) error
	Get(id string) (*MirrorRecord, error)
	ListAll() ([]MirrorRecord, error)
	Delete(id string) error
}

type airtableMirror struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAirtableMirror() MirrorClient {
	return &airtableMirror{
		baseURL: fmt.Sprintf("%s/%s/%s", config.MirrorBaseURL, config.MirrorBaseID,
			url.PathEscape(config.MirrorTable)),
		apiKey: config.MirrorAPIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *airtableMirror) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, m.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mirror API %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (m *airtableMirror) Create(fields mappers.MirrorFields) (string, error) {
	var rec MirrorRecord
	payload := map[string]interface{}{"fields": fields, "typecast": true}
	if err := m.do(http.MethodPost, "", payload, &rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (m *airtableMirror) Update(id string, fields mappers.MirrorFields) error {
	payload := map[string]interface{}{"fields": fields, "typecast": true}
	return m.do(http.MethodPatch, "/"+id, payload, nil)
}

func (m *airtableMirror) Get(id string) (*MirrorRecord, error) {
	var rec MirrorRecord
	if err := m.do(http.MethodGet, "/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll 翻页拉取全表
func (m *airtableMirror) ListAll() ([]MirrorRecord, error) {
	var all []MirrorRecord
	offset := ""
	for {
		var page struct {
			Records []MirrorRecord `json:"records"`
			Offset  string         `json:"offset"`
		}
		path := ""
		if offset != "" {
			path = "?offset=" + url.QueryEscape(offset)
		}
		if err := m.do(http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func (m *airtableMirror) Delete(id string) error {
	return m.do(http.MethodDelete, "/"+id, nil, nil)
}
