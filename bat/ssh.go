//
// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package bat

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// SSHTarget identifies an instance to probe over SSH with password
// authentication.
type SSHTarget struct {
	IP       string
	Port     string
	User     string
	Password string
	Timeout  time.Duration
}

func sshDial(ctx context.Context, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{
		Timeout: config.Timeout,
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to ssh server")
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to establish ssh connection")
	}

	return ssh.NewClient(c, chans, reqs), nil
}

// SSHCommand connects to the given target, runs a single command and
// returns its output.  It is used by the connectivity test to verify that
// a launched instance is reachable and accepts the credentials installed
// by its cloud-init payload.
func SSHCommand(ctx context.Context, target SSHTarget, command string) (string, error) {
	if target.Port == "" {
		target.Port = "22"
	}
	if target.Timeout == 0 {
		target.Timeout = 5 * time.Second
	}

	config := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(target.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         target.Timeout,
	}

	client, err := sshDial(ctx, net.JoinHostPort(target.IP, target.Port), config)
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "failed to create ssh session")
	}
	defer func() { _ = session.Close() }()

	var b bytes.Buffer
	session.Stdout = &b
	if err := session.Run(command); err != nil {
		return "", errors.Wrapf(err, "failed to run %q", command)
	}

	return b.String(), nil
}
