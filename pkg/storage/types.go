package storage

import (
	"context"
	"fmt"
	"path"
	"time"
)

// SelectionStore keeps the selected row ids of a session between requests.
type SelectionStore interface {
	// Load returns nil without error for unknown sessions.
	Load(ctx context.Context, sessionId string) ([]string, error)
	// Save replaces the stored ids, an empty slice removes the session.
	Save(ctx context.Context, sessionId string, ids []string) error
	Close() error
}

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

func selectionKey(prefix, sessionId string) string {
	return fmt.Sprintf("%s:selection:%s", prefix, sessionId)
}
