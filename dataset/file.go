package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// WriteFile 한 줄에 정수 하나씩 기록 (64KB 버퍼)
func WriteFile(data []int32, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "파일 생성 실패 %s", filename)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "파일 닫기 실패 %s", filename)
		}
	}()

	writer := bufio.NewWriterSize(file, 64*1024)
	buf := make([]byte, 0, 16)
	for _, num := range data {
		buf = strconv.AppendInt(buf[:0], int64(num), 10)
		buf = append(buf, '\n')
		if _, err := writer.Write(buf); err != nil {
			return errors.Wrapf(err, "파일 쓰기 실패 %s", filename)
		}
	}
	return errors.Wrapf(writer.Flush(), "파일 쓰기 실패 %s", filename)
}

// ReadFile WriteFile 형식의 파일을 읽는다. 빈 줄은 건너뛴다.
func ReadFile(filename string) ([]int32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "파일 열기 실패 %s", filename)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "파일 정보 조회 실패 %s", filename)
	}

	// 평균 10자리 + 개행 정도로 추정
	data := make([]int32, 0, int(fileInfo.Size()/11))

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		num, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, lineNo)
		}
		data = append(data, int32(num))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "파일 읽기 실패 %s", filename)
	}
	return data, nil
}
