package responder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StatusHealthy is the literal status field of every reply.
const StatusHealthy = "healthy"

type statusBody struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Requests uint64 `json:"requests"`
}

// BuildReply 生成固定格式的状态回复。Content-Length 总是等于 body 的字节数。
func BuildReply(version string, requests uint64) ([]byte, error) {
	body, err := json.Marshal(statusBody{
		Status:   StatusHealthy,
		Version:  version,
		Requests: requests,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode status body: %w", err)
	}

	var b bytes.Buffer
	b.Grow(96 + len(body))
	b.WriteString("HTTP/1.1 200 OK\r\n")
	b.WriteString("Content-Type: application/json\r\n")
	b.WriteString("Content-Length: ")
	b.WriteString(strconv.Itoa(len(body)))
	b.WriteString("\r\n\r\n")
	b.Write(body)
	return b.Bytes(), nil
}
