package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

const baseURL = "http://127.0.0.1:9000"

// minimalPDF 一份最小可渲染的单页 PDF，作为上传探针内容
var minimalPDF = []byte("%PDF-1.4\n" +
	"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 595 842]>>endobj\n" +
	"trailer<</Root 1 0 R>>\n" +
	"%%EOF\n")

type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type uploadResult struct {
	Identifier   string `json:"identifier"`
	StorageURL   string `json:"storageUrl"`
	ShareableURL string `json:"shareableUrl"`
}

func main() {
	// 1. 健康检查
	health := getJSON("/api/health")
	fmt.Println("health:", string(health.Data))

	// 2. 上传一份测试 PDF
	result := upload("smoke-test.pdf", minimalPDF)
	fmt.Println("identifier:", result.Identifier)
	fmt.Println("storageUrl:", result.StorageURL)
	fmt.Println("shareableUrl:", result.ShareableURL)

	// 3. 按标识符解析
	resolve := getJSON("/api/resolve?identifier=" + url.QueryEscape(result.Identifier))
	fmt.Println("resolve:", string(resolve.Data))

	// 4. 历史列表应包含刚上传的记录
	history := getJSON("/api/history?limit=5")
	if !bytes.Contains(history.Data, []byte(result.Identifier)) {
		log.Fatalf("history does not contain %s: %s", result.Identifier, history.Data)
	}
	fmt.Println("history ok")

	// 5. 非 PDF 声明类型必须被拒绝，且不产生任何存储副作用
	rejected := uploadRaw("notes.txt", "text/plain", []byte("plain text"))
	if rejected.Status {
		log.Fatalf("expect non-pdf upload rejected, got: %s", rejected.Message)
	}
	fmt.Println("non-pdf rejected:", rejected.Message)

	fmt.Println("smoke test passed")
}

func upload(filename string, content []byte) uploadResult {
	env := uploadRaw(filename, "application/pdf", content)
	if !env.Status {
		log.Fatalf("upload failed: code=%d message=%s", env.Code, env.Message)
	}
	var result uploadResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		log.Fatalf("decode upload result: %v", err)
	}
	return result
}

func uploadRaw(filename string, contentType string, content []byte) envelope {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// 手工构建 part 头以便控制声明的 Content-Type
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		log.Fatal("create part:", err)
	}
	if _, err := part.Write(content); err != nil {
		log.Fatal("write part:", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal("close writer:", err)
	}

	resp, err := http.Post(baseURL+"/api/upload", writer.FormDataContentType(), &body)
	if err != nil {
		log.Fatal("upload:", err)
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp.Body)
}

func getJSON(path string) envelope {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		log.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	env := decodeEnvelope(resp.Body)
	if !env.Status {
		log.Fatalf("get %s failed: code=%d message=%s", path, env.Code, env.Message)
	}
	return env
}

func decodeEnvelope(r io.Reader) envelope {
	raw, err := io.ReadAll(r)
	if err != nil {
		log.Fatal("read response:", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Fatalf("decode response %s: %v", raw, err)
	}
	return env
}
