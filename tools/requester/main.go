// Command requester polls the tracking endpoint with a mix of known and
// unknown order numbers.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/stichkala/order-service/internal/entities"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base url")
	maxSeq := flag.Int("max", 100, "highest order sequence to ask for")
	flag.Parse()

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(*baseURL, *maxSeq) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func doRequest(baseURL string, maxSeq int) {
	seq := int64(1 + rand.Intn(maxSeq))
	// примерно каждый пятый номер заведомо не существует
	if rand.Intn(5) == 0 {
		seq += 1_000_000
	}

	url := baseURL + "/orders/track/" + entities.FormatOrderNumber(seq)
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	fmt.Println("GET", url, "->", resp.Status)
	resp.Body.Close()
}
