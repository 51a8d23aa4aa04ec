package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Manual smoke check against a running server. Walks the whole surface:
// register, login, product CRUD, chat, logout.
//
//	go run scripts/smoke_api.go

const baseURL = "http://localhost:5000/api"

var token string

func prettyPrint(data []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}

func call(method, path string, body interface{}) []byte {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			color.Red("marshal: %v", err)
			os.Exit(1)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		color.Red("request: %v", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		color.Red("%s %s: %v", method, path, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		color.Yellow("%s %s -> %d", method, path, resp.StatusCode)
	} else {
		color.Green("%s %s -> %d", method, path, resp.StatusCode)
	}
	prettyPrint(data)
	return data
}

func main() {
	color.Cyan("== Auth ==")
	var auth struct {
		Token string `json:"token"`
	}
	data := call("POST", "/register", map[string]string{
		"username": "smoke_user",
		"email":    "smoke@example.com",
		"password": "secret123",
	})
	_ = json.Unmarshal(data, &auth)
	if auth.Token == "" {
		data = call("POST", "/login", map[string]string{
			"username": "smoke_user",
			"password": "secret123",
		})
		_ = json.Unmarshal(data, &auth)
	}
	token = auth.Token

	color.Cyan("== Products ==")
	price := 1.5
	stock := 100
	call("POST", "/products", map[string]interface{}{
		"name": "smoke-pen", "price": price, "category": "stationery", "stock": stock,
	})
	call("GET", "/products", nil)
	call("GET", "/products/search?name=smoke", nil)
	call("GET", "/products/categories", nil)
	call("PUT", "/products/update/smoke-pen", map[string]float64{"price": 1.75})
	call("PUT", "/products/reduce-stock/smoke-pen", map[string]int{"amount": 5})

	color.Cyan("== Chat ==")
	call("POST", "/chat", map[string]string{"message": "hi"})
	call("POST", "/chat", map[string]string{"message": "show all products"})
	call("POST", "/chat", map[string]string{"message": "search smoke"})
	call("GET", "/chat/history", nil)

	color.Cyan("== Cleanup ==")
	call("DELETE", "/products/delete/smoke-pen", nil)
	call("POST", "/logout", nil)
}
