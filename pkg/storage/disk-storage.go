package storage

import (
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/matst80/slask-table/pkg/common/jsoncompat"
)

// ErrNoData is returned when the requested file does not exist.
var ErrNoData = errors.New("no stored data")

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	if err := os.MkdirAll(p.RootFolder, 0o755); err != nil {
		return err
	}
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	zipWriter := gzip.NewWriter(file)
	err = jsoncompat.NewEncoder(zipWriter).Encode(data)
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoData
	}
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	if err := os.MkdirAll(p.RootFolder, 0o755); err != nil {
		return err
	}
	fileName, tmpFileName := p.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	err = jsoncompat.NewEncoder(file).Encode(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoData
	}
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
