package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare/constant"
	"vidshare/entities"
	"vidshare/storage"
)

type fakeRepo struct {
	videos    []*entities.Video
	createErr error
	seq       int
}

func (f *fakeRepo) Create(ctx context.Context, v *entities.Video) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	v.ID = uuid.New()
	v.UploadDate = time.Unix(int64(1_000_000+f.seq), 0)
	f.videos = append(f.videos, v)
	return nil
}

func (f *fakeRepo) ListByUploadDateDesc(ctx context.Context) ([]*entities.Video, error) {
	out := make([]*entities.Video, len(f.videos))
	copy(out, f.videos)
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

func (f *fakeRepo) DeleteAll(ctx context.Context) error {
	f.videos = nil
	return nil
}

// fakeProcessor honours the processor contract: on success it writes the
// outputs and removes the raw file, on failure it leaves only the raw file.
type fakeProcessor struct {
	dirs      storage.Dirs
	fail      bool
	thumbnail bool
}

func (p *fakeProcessor) Process(ctx context.Context, rawPath, base string) (Result, error) {
	if p.fail {
		return Result{}, errors.Join(ErrProcessing, errors.New("boom"))
	}
	res := Result{
		ProcessedFilename: storage.ProcessedName(base),
		ProcessedPath:     filepath.Join(p.dirs.Processed, storage.ProcessedName(base)),
	}
	if err := os.WriteFile(res.ProcessedPath, []byte("processed"), 0644); err != nil {
		return Result{}, errors.Join(ErrProcessing, err)
	}
	if p.thumbnail {
		res.ThumbnailFilename = storage.ThumbnailName(base)
		res.ThumbnailPath = filepath.Join(p.dirs.Thumbnails, res.ThumbnailFilename)
		if err := os.WriteFile(res.ThumbnailPath, []byte("thumb"), 0644); err != nil {
			return Result{}, errors.Join(ErrProcessing, err)
		}
	}
	if err := os.Remove(rawPath); err != nil {
		return Result{}, errors.Join(ErrProcessing, err)
	}
	return res, nil
}

func saveBytes(content []byte) func(string) error {
	return func(dst string) error {
		return os.WriteFile(dst, content, 0644)
	}
}

func validInput() UploadInput {
	return UploadInput{
		Title:    "My clip",
		Filename: "clip.mp4",
		MIMEType: "video/mp4",
		Size:     int64(2 << 20),
		Save:     saveBytes([]byte("raw video")),
	}
}

func dirCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func newTestDirs(t *testing.T) storage.Dirs {
	t.Helper()
	dirs := storage.NewDirs(t.TempDir())
	require.NoError(t, dirs.Ensure())
	return dirs
}

func TestUploadAccepted(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs, thumbnail: true}, dirs)

	video, err := svc.Upload(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "My clip", video.Title)
	assert.NotEqual(t, uuid.Nil, video.ID)
	assert.Equal(t, constant.PublicVideoPrefix+"/"+video.ProcessedFilename, video.ProcessedPath)
	assert.Equal(t, constant.PublicThumbnailPrefix+"/"+video.ThumbnailFilename, video.ThumbnailPath)
	assert.Equal(t, entities.CurrentSchemaVersion, video.SchemaVersion)

	assert.Len(t, repo.videos, 1)
	assert.Equal(t, 0, dirCount(t, dirs.Originals), "raw file is transient")
	assert.Equal(t, 1, dirCount(t, dirs.Processed))
	assert.Equal(t, 1, dirCount(t, dirs.Thumbnails))
}

func TestUploadWithoutThumbnailGetsPlaceholder(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs}, dirs)

	video, err := svc.Upload(context.Background(), validInput())
	require.NoError(t, err)

	assert.Empty(t, video.ThumbnailFilename)
	assert.Equal(t, constant.PlaceholderThumbnail, video.ThumbnailPath)
}

func TestUploadValidationRejectionWritesNothing(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs}, dirs)

	in := validInput()
	in.Title = "   "
	_, err := svc.Upload(context.Background(), in)

	assert.ErrorIs(t, err, ErrClientInput)
	assert.Empty(t, repo.videos)
	assert.Equal(t, 0, dirCount(t, dirs.Originals))
	assert.Equal(t, 0, dirCount(t, dirs.Processed))
}

func TestUploadProcessingFailureRollsBack(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs, fail: true}, dirs)

	_, err := svc.Upload(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrProcessing)
	assert.Empty(t, repo.videos, "no record may exist after a processing failure")
	assert.Equal(t, 0, dirCount(t, dirs.Originals))
	assert.Equal(t, 0, dirCount(t, dirs.Processed))
	assert.Equal(t, 0, dirCount(t, dirs.Thumbnails))
}

func TestUploadPersistenceFailureRemovesAllFiles(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{createErr: errors.New("duplicate key value violates unique constraint")}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs, thumbnail: true}, dirs)

	_, err := svc.Upload(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 0, dirCount(t, dirs.Originals))
	assert.Equal(t, 0, dirCount(t, dirs.Processed))
	assert.Equal(t, 0, dirCount(t, dirs.Thumbnails))
}

func TestUploadFilenamesNeverCollide(t *testing.T) {
	dirs := newTestDirs(t)
	repo := &fakeRepo{}
	svc := NewUploadService(repo, &fakeProcessor{dirs: dirs}, dirs)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		in := validInput()
		in.Title = fmt.Sprintf("clip %d", i)
		video, err := svc.Upload(context.Background(), in)
		require.NoError(t, err)
		_, dup := seen[video.ProcessedFilename]
		require.False(t, dup, "processed filename %q collided on upload %d", video.ProcessedFilename, i)
		seen[video.ProcessedFilename] = struct{}{}
	}
}
