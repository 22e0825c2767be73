//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/jsphweid/musicbox/cmd"
	"github.com/jsphweid/musicbox/config"
	"github.com/jsphweid/musicbox/model"
	"github.com/stretchr/testify/assert"
)

type staticParser struct{}

func (staticParser) Parse(ctx context.Context, rawText, artistHint, titleHint string) (*model.Song, error) {
	return &model.Song{
		Title:  titleHint,
		Artist: artistHint,
		Sections: []model.SongSection{
			{Type: "verse", Content: "[G]Mama, take this [C]badge off of [D]me"},
		},
	}, nil
}

var libDir string

func TestMain(m *testing.M) {
	var err error
	libDir, err = os.MkdirTemp("", "musicbox-e2e")
	if err != nil {
		panic(err.Error())
	}

	cfg := config.Config{LibraryDir: libDir}
	if err := cmd.LoadServe(cfg, staticParser{}, nil); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.RemoveAll(libDir)
	os.Exit(exitVal)
}

func createCleanReqBody(title, artist, raw string) io.Reader {
	cr := model.CleanRequest{Title: title, Artist: artist, RawText: raw}
	data, err := json.Marshal(cr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestCleanAndListE2E(t *testing.T) {
	assert := assert.New(t)

	router := cmd.NewRouter()

	body := createCleanReqBody("Knockin' on Heaven's Door", "Bob Dylan", "messy pasted text")
	req := httptest.NewRequest(http.MethodPost, "/clean", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(200, resp.StatusCode)

	var info model.SheetInfo
	respBody, _ := io.ReadAll(resp.Body)
	err := json.Unmarshal(respBody, &info)
	if err != nil {
		panic(err.Error())
	}
	assert.Equal("Bob Dylan - Knockin' on Heaven's Door", info.Name)
	assert.FileExists(info.SheetPath)
	assert.FileExists(info.DataPath)

	sheet, err := os.ReadFile(info.SheetPath)
	assert.Nil(err)
	chordRow := "G" + strings.Repeat(" ", 15) + "C" + strings.Repeat(" ", 12) + "D"
	assert.Contains(string(sheet), chordRow)
	assert.Contains(string(sheet), "Mama, take this badge off of me")

	// list shows the new sheet
	req = httptest.NewRequest(http.MethodGet, "/sheets", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp = w.Result()
	assert.Equal(200, resp.StatusCode)

	var infos []model.SheetInfo
	respBody, _ = io.ReadAll(resp.Body)
	err = json.Unmarshal(respBody, &infos)
	if err != nil {
		panic(err.Error())
	}
	assert.Equal(1, len(infos))
	assert.Equal(info.Name, infos[0].Name)

	// fetch one by name
	req = httptest.NewRequest(http.MethodGet, "/sheets/"+url.PathEscape(infos[0].Name), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(200, w.Result().StatusCode)
}

func TestGetMissingSheetE2E(t *testing.T) {
	assert := assert.New(t)

	req := httptest.NewRequest(http.MethodGet, "/sheets/Nobody%20-%20Nothing", nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(404, resp.StatusCode)

	var e model.ErrorResponse
	respBody, _ := io.ReadAll(resp.Body)
	err := json.Unmarshal(respBody, &e)
	assert.Nil(err)
	assert.True(strings.Contains(e.Error, "no sheet named"))
}
