package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
)

var (
	baseURL      = pflag.String("url", "http://127.0.0.1:8095", "nodelete server address")
	numWorkers   = pflag.Int("workers", 50, "concurrent clients")
	testDuration = pflag.Duration("duration", 10*time.Second, "length of each phase")
	numMessages  = pflag.Int("messages", 500, "message ids per channel")
	numChannels  = pflag.Int("channels", 5, "channels to spread events over")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// accepted counts delete/update events the server took, per channel. Every
// one of them must show up as exactly one log entry.
type accepted struct {
	mu     sync.Mutex
	counts map[string]int
}

func (a *accepted) add(ch string) {
	a.mu.Lock()
	a.counts[ch]++
	a.mu.Unlock()
}

var (
	channels []string
	logged   = &accepted{counts: make(map[string]int)}
)

func main() {
	pflag.Parse()

	run := time.Now().UnixNano()
	for i := 0; i < *numChannels; i++ {
		channels = append(channels, fmt.Sprintf("lt-%d-%d", run, i))
	}

	fmt.Println("=== nodelete Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", *numWorkers, *testDuration)
	fmt.Printf("Messages: %d | Channels: %d\n\n", *numMessages, *numChannels)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Filling message cache (MESSAGE_CREATE) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		return doCreate(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed events (40% create, 30% update, 20% delete, 10% read) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doCreate(rng)
		case r < 0.70:
			return doUpdate(rng)
		case r < 0.90:
			return doDelete(rng)
		default:
			return doGetLogs(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% delete, 90% read) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doDelete(rng)
		case r < 0.80:
			return doGetLogs(rng)
		case r < 0.95:
			return doGetChannels()
		default:
			return doGetMenu(rng)
		}
	})

	verifyEntryCounts()
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func randomMessage(rng *rand.Rand) map[string]any {
	return map[string]any{
		"id":         rng.Intn(*numMessages) + 1,
		"channel_id": channels[rng.Intn(len(channels))],
		"content":    fmt.Sprintf("content %d", rng.Int63()),
		"author":     map[string]any{"id": fmt.Sprintf("u%d", rng.Intn(50))},
		"timestamp":  time.Now().UnixMilli(),
	}
}

func postEvent(endpoint string, event map[string]any) (result, bool) {
	data, _ := json.Marshal(event)
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+"/events", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == http.StatusCreated
	return result{endpoint, resp.StatusCode, lat, !ok}, ok
}

func doCreate(rng *rand.Rand) result {
	r, _ := postEvent("POST /events create", map[string]any{"type": "MESSAGE_CREATE", "message": randomMessage(rng)})
	return r
}

func doUpdate(rng *rand.Rand) result {
	msg := randomMessage(rng)
	r, ok := postEvent("POST /events update", map[string]any{"type": "MESSAGE_UPDATE", "message": msg})
	if ok {
		logged.add(msg["channel_id"].(string))
	}
	return r
}

func doDelete(rng *rand.Rand) result {
	ch := channels[rng.Intn(len(channels))]
	r, ok := postEvent("POST /events delete", map[string]any{
		"type":      "MESSAGE_DELETE",
		"channelId": ch,
		"id":        fmt.Sprint(rng.Intn(*numMessages) + 1),
	})
	if ok {
		logged.add(ch)
	}
	return r
}

func doGet(endpoint, target string) result {
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doGetLogs(rng *rand.Rand) result {
	ch := channels[rng.Intn(len(channels))]
	return doGet("GET /logs", fmt.Sprintf("%s/logs?ch=%s", *baseURL, url.QueryEscape(ch)))
}

func doGetChannels() result {
	return doGet("GET /channels", *baseURL+"/channels")
}

func doGetMenu(rng *rand.Rand) result {
	ch := channels[rng.Intn(len(channels))]
	return doGet("GET /menu", fmt.Sprintf("%s/menu?ch=%s", *baseURL, url.QueryEscape(ch)))
}

func verifyEntryCounts() {
	fmt.Println("\n--- Verifying one log entry per accepted event ---")
	failed := 0
	for _, ch := range channels {
		resp, err := httpClient.Get(fmt.Sprintf("%s/logs?ch=%s", *baseURL, url.QueryEscape(ch)))
		if err != nil {
			fmt.Printf("  %s: request failed: %s\n", ch, err)
			failed++
			continue
		}
		var entries []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&entries)
		resp.Body.Close()
		if err != nil {
			fmt.Printf("  %s: bad response: %s\n", ch, err)
			failed++
			continue
		}

		want := logged.counts[ch]
		status := "OK"
		if len(entries) != want {
			status = "MISMATCH"
			failed++
		}
		fmt.Printf("  %-32s accepted=%6d logged=%6d %s\n", ch, want, len(entries), status)
	}
	if failed > 0 {
		fmt.Printf("\n  FAILED: %d channel(s) disagree\n", failed)
		return
	}
	fmt.Println("\n  PASSED")
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
