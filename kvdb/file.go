package kvdb

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
)

// FileStore 데이터셋 하나를 snappy 로 압축한 텍스트 파일 하나에 저장한다.
// 첫 줄은 "#<개수> <지문>", 이후 한 줄에 숫자 하나.
type FileStore struct {
	dir string
}

const fileExt = ".txt.sz"

func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "file: create %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Kind() Kind { return KindFile }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Save 임시 파일에 쓰고 rename 한다.
func (s *FileStore) Save(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "file: save %s", name)
	}
	defer os.Remove(tmp.Name())

	if err := writeValues(tmp, values); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "file: save %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "file: save %s", name)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path(name)), "file: save %s", name)
}

// writeValues 큰 버퍼 + snappy 스트림
func writeValues(f *os.File, values []int32) error {
	zw := snappy.NewBufferedWriter(f)
	w := bufio.NewWriterSize(zw, 64*1024)

	fp := FingerprintOf(values)
	if _, err := fmt.Fprintf(w, "#%d %d\n", fp.Count, fp.Sum); err != nil {
		return err
	}

	var buf []byte
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return zw.Close()
}

func (s *FileStore) Load(name string) ([]int32, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "file: load %s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "file: load %s", name)
	}
	defer f.Close()

	header, values, err := readValues(f)
	if err != nil {
		return nil, errors.Wrapf(err, "file: load %s", name)
	}
	if err := verify(name, header, values); err != nil {
		return nil, err
	}
	return values, nil
}

func readValues(f *os.File) (Fingerprint, []int32, error) {
	scanner := bufio.NewScanner(snappy.NewReader(f))
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Fingerprint{}, nil, err
		}
		return Fingerprint{}, nil, errors.Wrap(ErrCorrupt, "missing header")
	}
	var header Fingerprint
	if _, err := fmt.Sscanf(scanner.Text(), "#%d %d", &header.Count, &header.Sum); err != nil {
		return Fingerprint{}, nil, errors.Wrapf(ErrCorrupt, "header: %v", err)
	}

	values := make([]int32, 0, header.Count)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return Fingerprint{}, nil, errors.Wrapf(ErrCorrupt, "value %q", line)
		}
		values = append(values, int32(n))
	}
	return header, values, scanner.Err()
}

func (s *FileStore) Size() (int64, error) {
	return getDirSize(s.dir)
}

func (s *FileStore) Close() error { return nil }
