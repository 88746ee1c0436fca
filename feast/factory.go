package feast

import (
	"strconv"
	"strings"
)

// NewClient 按端点地址创建客户端。
//
// 端点形如 "localhost:6565" 或 "grpc://localhost:6565"，协议前缀会被
// 忽略；省略端口时使用 Feature Server 的默认 gRPC 端口 6565。
//
// 示例：
//
//	client, err := feast.NewClient("localhost:6565", "matchkit",
//		feast.WithTimeout(5*time.Second))
func NewClient(endpoint, project string, opts ...ClientOption) (Client, error) {
	host, port := parseEndpoint(endpoint)
	return NewGrpcClient(host, port, project, opts...)
}

// parseEndpoint 解析端点地址，返回 host 和 port（未指定端口时为 0）。
func parseEndpoint(endpoint string) (string, int) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	parts := strings.Split(endpoint, ":")
	if len(parts) == 2 {
		if port, err := strconv.Atoi(parts[1]); err == nil {
			return parts[0], port
		}
	}
	return endpoint, 0
}
