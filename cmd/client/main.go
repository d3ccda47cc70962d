package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const serverPort = 8080

type Contact struct {
	Id        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
}

// accessToken authorizes all requests of the measurement run.
var accessToken string

// Usage example on the command line:
// > go run main.go
func main() {
	accessToken = login()
	fmt.Println()
	fmt.Println("  Elements      POST     PATCH       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	jsonBody := []byte(`{
		"first_name": "Marcus",
		"last_name": "Antonius",
		"email": "marcus.antonius@example.com",
		"phone": "+39 999 777 555",
		"birthday": "1977-11-09"
	}`)
	for _, loops := range sizes {
		firstID, _ := sendPostRequest(bytes.NewReader(jsonBody))
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				_, d := sendPostRequest(bytes.NewReader(jsonBody))
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PATCH requests
			f := func(id int64) int64 {
				return sendPatchGetDeleteRequest(id, http.MethodPatch, bytes.NewReader(jsonBody))
			}
			callInLoop(firstID, loops, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				return sendPatchGetDeleteRequest(id, http.MethodGet, nil)
			}
			callInLoop(firstID, loops, f)
		}
		{
			// DELETE requests
			f := func(id int64) int64 {
				return sendPatchGetDeleteRequest(id, http.MethodDelete, nil)
			}
			callInLoop(firstID, loops, f)
		}
		sendPatchGetDeleteRequest(firstID, http.MethodDelete, nil)
		fmt.Println()
	}
}

// login registers a measurement account (ignoring the conflict if it exists
// from an earlier run) and returns a fresh access token.
func login() string {
	signupBody := []byte(`{
		"username": "benchmark",
		"email": "benchmark@example.com",
		"password": "benchmark-password"
	}`)
	signupURL := fmt.Sprintf("http://localhost:%d/auth/signup", serverPort)
	sendRequest(http.MethodPost, signupURL, bytes.NewReader(signupBody))

	loginBody := []byte(`{
		"username": "benchmark",
		"password": "benchmark-password"
	}`)
	loginURL := fmt.Sprintf("http://localhost:%d/auth/login", serverPort)
	resBody, _ := sendRequest(http.MethodPost, loginURL, bytes.NewReader(loginBody))
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resBody, &token); err != nil || token.AccessToken == "" {
		fmt.Println("could not log in", err)
		panic("login failed")
	}
	return token.AccessToken
}

func callInLoop(firstID int64, loops int, f func(id int64) int64) {
	ids := createRandomSliceWithIDs(firstID+1, loops)
	var duration int64
	for _, id := range ids {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(loops*1000))
}

func createRandomSliceWithIDs(firstID int64, loops int) []int64 {
	ids := make([]int64, 0, loops)
	for i := 0; i < loops; i++ {
		ids = append(ids, firstID+int64(i))
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

func sendPostRequest(bodyReader io.Reader) (int64, int64) {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts", serverPort)
	resBody, duration := sendRequest(http.MethodPost, requestURL, bodyReader)
	var contact Contact
	err := json.Unmarshal(resBody, &contact)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return contact.Id, duration
}

func sendPatchGetDeleteRequest(id int64, method string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/contacts/%d", serverPort, id)
	_, duration := sendRequest(method, requestURL, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
