package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"git.arvados.org/arvados.git/sdk/go/arvados"
	"git.arvados.org/arvados.git/sdk/go/arvadosclient"
	"git.arvados.org/arvados.git/sdk/go/keepclient"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/net/websocket"
)

type eventMessage struct {
	Status     int
	ObjectUUID string `json:"object_uuid"`
	EventType  string `json:"event_type"`
	Properties struct {
		Text string
	}
}

// arvadosContainerRunner runs this program (with the given Args) in
// an Arvados container, and waits for it to finish.
type arvadosContainerRunner struct {
	Client      *arvados.Client
	Name        string
	ProjectUUID string
	VCPUs       int
	RAM         int64
	Args        []string
	Mounts      map[string]map[string]interface{}
	Priority    int
	PollEvery   time.Duration
}

var collectionInPathRe = regexp.MustCompile(`^(.*/)?([0-9a-f]{32}\+[0-9]+|[0-9a-z]{5}-[0-9a-z]{5}-[0-9a-z]{15})(/.*)?$`)

// Run submits a container request and returns the UUID of its output
// collection.
func (runner *arvadosContainerRunner) Run() (string, error) {
	if runner.ProjectUUID == "" {
		return "", errors.New("cannot run arvados container: ProjectUUID not provided")
	}
	cmdUUID, err := runner.makeCommandCollection()
	if err != nil {
		return "", err
	}
	mounts := map[string]map[string]interface{}{
		"/mnt/cmd": {
			"kind": "collection",
			"uuid": cmdUUID,
		},
		"/mnt/output": {
			"kind":     "collection",
			"writable": true,
		},
	}
	for path, mnt := range runner.Mounts {
		mounts[path] = mnt
	}
	priority := runner.Priority
	if priority < 1 {
		priority = 500
	}
	var cr arvados.ContainerRequest
	err = runner.Client.RequestAndDecode(&cr, "POST", "arvados/v1/container_requests", nil, map[string]interface{}{
		"container_request": map[string]interface{}{
			"owner_uuid":      runner.ProjectUUID,
			"name":            runner.Name,
			"container_image": "refgenome-runtime",
			"command":         append([]string{"/mnt/cmd/refgenome"}, runner.Args...),
			"mounts":          mounts,
			"use_existing":    true,
			"output_path":     "/mnt/output",
			"runtime_constraints": arvados.RuntimeConstraints{
				VCPUs:        runner.VCPUs,
				RAM:          runner.RAM,
				KeepCacheRAM: (1 << 26) * 2 * int64(runner.VCPUs),
			},
			"priority": priority,
			"state":    arvados.ContainerRequestStateCommitted,
		},
	})
	if err != nil {
		return "", err
	}
	log.Printf("container request UUID: %s", cr.UUID)

	pollEvery := runner.PollEvery
	if pollEvery <= 0 {
		pollEvery = 5 * time.Second
	}
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()
	lastState := cr.State
	done := make(chan struct{})
	defer close(done)
	following := false
	for cr.State != arvados.ContainerRequestStateFinal {
		if !following && cr.ContainerUUID != "" {
			go runner.followLogs(cr.ContainerUUID, done)
			following = true
		}
		<-ticker.C
		err = runner.Client.RequestAndDecode(&cr, "GET", "arvados/v1/container_requests/"+cr.UUID, nil, nil)
		if err != nil {
			log.Warnf("error getting container request: %s", err)
			continue
		}
		if cr.State != lastState {
			log.Printf("container request state: %s", cr.State)
			lastState = cr.State
		}
	}

	var c arvados.Container
	err = runner.Client.RequestAndDecode(&c, "GET", "arvados/v1/containers/"+cr.ContainerUUID, nil, nil)
	if err != nil {
		return "", err
	} else if c.State != arvados.ContainerStateComplete {
		return "", fmt.Errorf("container did not complete: %s", c.State)
	} else if c.ExitCode != 0 {
		return "", fmt.Errorf("container exited %d", c.ExitCode)
	}
	return cr.OutputUUID, nil
}

// followLogs copies the container's stderr and crunch-run log events
// to our log until done is closed, reconnecting after errors.
func (runner *arvadosContainerRunner) followLogs(uuid string, done <-chan struct{}) {
	for {
		conn, err := runner.dialWebsocket()
		if err != nil {
			log.Warnf("websocket connection error: %s", err)
			select {
			case <-done:
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}
		closed := make(chan struct{})
		go func() {
			select {
			case <-done:
			case <-closed:
			}
			conn.Close()
		}()
		err = json.NewEncoder(conn).Encode(map[string]interface{}{
			"method": "subscribe",
			"filters": [][]interface{}{
				{"object_uuid", "=", uuid},
				{"event_type", "in", []string{"stderr", "crunch-run"}},
			},
		})
		dec := json.NewDecoder(conn)
		for err == nil {
			var msg eventMessage
			err = dec.Decode(&msg)
			if err != nil {
				break
			}
			if msg.ObjectUUID != uuid || msg.Properties.Text == "" {
				continue
			}
			for _, line := range strings.Split(strings.TrimSuffix(msg.Properties.Text, "\n"), "\n") {
				log.Printf("%s %s: %s", uuid, msg.EventType, line)
			}
		}
		close(closed)
		select {
		case <-done:
			return
		default:
			log.Printf("error reading websocket: %s", err)
		}
	}
}

func (runner *arvadosContainerRunner) dialWebsocket() (*websocket.Conn, error) {
	var cluster arvados.Cluster
	err := runner.Client.RequestAndDecode(&cluster, "GET", arvados.EndpointConfigGet.Path, nil, nil)
	if err != nil {
		return nil, err
	}
	wsURL := cluster.Services.Websocket.ExternalURL
	wsURL.Scheme = strings.Replace(wsURL.Scheme, "http", "ws", 1)
	wsURL.Path = "/websocket"
	wsURL.RawQuery = url.Values{"api_token": []string{runner.Client.AuthToken}}.Encode()
	return websocket.Dial(wsURL.String(), "", cluster.Services.Controller.ExternalURL.String())
}

// TranslatePaths replaces each path that refers to an Arvados
// collection with the path where that collection will be mounted in
// the container, and adds the necessary mounts.
func (runner *arvadosContainerRunner) TranslatePaths(paths ...*string) error {
	if runner.Mounts == nil {
		runner.Mounts = make(map[string]map[string]interface{})
	}
	for _, path := range paths {
		if *path == "" || *path == "-" {
			continue
		}
		m := collectionInPathRe.FindStringSubmatch(*path)
		if m == nil {
			return fmt.Errorf("cannot find uuid in path: %q", *path)
		}
		collID := m[2]
		if _, ok := runner.Mounts["/mnt/"+collID]; !ok {
			mnt := map[string]interface{}{
				"kind": "collection",
			}
			if len(collID) == 27 {
				mnt["uuid"] = collID
			} else {
				mnt["portable_data_hash"] = collID
			}
			runner.Mounts["/mnt/"+collID] = mnt
		}
		*path = "/mnt/" + collID + m[3]
	}
	return nil
}

func (runner *arvadosContainerRunner) makeCommandCollection() (string, error) {
	exe, err := ioutil.ReadFile("/proc/self/exe")
	if err != nil {
		return "", err
	}
	b2 := blake2b.Sum256(exe)
	cname := fmt.Sprintf("refgenome-%x", b2)
	var existing arvados.CollectionList
	err = runner.Client.RequestAndDecode(&existing, "GET", "arvados/v1/collections", nil, arvados.ListOptions{
		Limit: 1,
		Count: "none",
		Filters: []arvados.Filter{
			{Attr: "name", Operator: "=", Operand: cname},
			{Attr: "owner_uuid", Operator: "=", Operand: runner.ProjectUUID},
		},
	})
	if err != nil {
		return "", err
	}
	if len(existing.Items) > 0 {
		uuid := existing.Items[0].UUID
		log.Printf("using existing collection %q named %q (did not verify whether content matches)", uuid, cname)
		return uuid, nil
	}
	log.Printf("writing refgenome binary to new collection %q", cname)
	ac, err := arvadosclient.New(runner.Client)
	if err != nil {
		return "", err
	}
	kc := keepclient.New(ac)
	var coll arvados.Collection
	fs, err := coll.FileSystem(runner.Client, kc)
	if err != nil {
		return "", err
	}
	f, err := fs.OpenFile("refgenome", os.O_CREATE|os.O_WRONLY, 0777)
	if err != nil {
		return "", err
	}
	_, err = f.Write(exe)
	if err != nil {
		return "", err
	}
	err = f.Close()
	if err != nil {
		return "", err
	}
	mtxt, err := fs.MarshalManifest(".")
	if err != nil {
		return "", err
	}
	err = runner.Client.RequestAndDecode(&coll, "POST", "arvados/v1/collections", nil, map[string]interface{}{
		"collection": map[string]interface{}{
			"owner_uuid":    runner.ProjectUUID,
			"manifest_text": mtxt,
			"name":          cname,
		},
	})
	if err != nil {
		return "", err
	}
	log.Printf("stored refgenome binary in new collection %s", coll.UUID)
	return coll.UUID, nil
}
