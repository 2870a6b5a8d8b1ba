// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package awsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// MockS3Client - mock S3 client for unit tests. Don't forget to call FinishTest() at the end of your test to check
// that all calls to S3 were made, and there were no unexpected calls!
//
// Requests must arrive in the order given in the Exp* lists. Each is answered
// with the corresponding item of the Queued* list, a nil item in there is
// returned as an error (a NoSuchKey error for Get/Head)
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests
	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput

	// Responses replayed as each request comes in
	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput

	// Put bodies are compared against the expected body unless the key is listed here
	SkipPutCheckNames []string

	// Every body received by PutObject, in order, so tests can feed them back through GetObject
	ReceivedPutBodies [][]byte
}

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	err := m.getFinishTestResult()
	if err != nil {
		fmt.Println(err)
	}
	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	// Expecting no inputs left
	remaining := map[string]int{
		"ListObjectsV2": len(m.ExpListObjectsV2Input),
		"HeadObject":    len(m.ExpHeadObjectInput),
		"GetObject":     len(m.ExpGetObjectInput),
		"PutObject":     len(m.ExpPutObjectInput),
	}
	for _, name := range []string{"ListObjectsV2", "HeadObject", "GetObject", "PutObject"} {
		if remaining[name] > 0 {
			return fmt.Errorf("Test expected more %v calls to func", name)
		}
	}

	// Expecting nothing left to output
	outputs := map[string]int{
		"ListObjectsV2": len(m.QueuedListObjectsV2Output),
		"HeadObject":    len(m.QueuedHeadObjectOutput),
		"GetObject":     len(m.QueuedGetObjectOutput),
		"PutObject":     len(m.QueuedPutObjectOutput),
	}
	for _, name := range []string{"ListObjectsV2", "HeadObject", "GetObject", "PutObject"} {
		if outputs[name] > 0 {
			return fmt.Errorf("Remaining output %v for func", name)
		}
	}

	return nil
}

// nextExpected - pops the next expected request (as a string) and checks it matches
func nextExpected(name string, expStrs []string, inpStr string) error {
	if len(expStrs) <= 0 {
		return errors.New(ErrNoMoreInputsExpected + name)
	}
	if expStrs[0] != inpStr {
		return fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"\n", ErrWrongInput+name, expStrs[0], inpStr)
	}
	return nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "ListObjectsV2"
	exp := []string{}
	for _, e := range m.ExpListObjectsV2Input {
		exp = append(exp, e.String())
	}
	if err := nextExpected(name, exp, input.String()); err != nil {
		return nil, err
	}
	m.ExpListObjectsV2Input = m.ExpListObjectsV2Input[1:]

	if len(m.QueuedListObjectsV2Output) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}
	result := m.QueuedListObjectsV2Output[0]
	m.QueuedListObjectsV2Output = m.QueuedListObjectsV2Output[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "HeadObject"
	exp := []string{}
	for _, e := range m.ExpHeadObjectInput {
		exp = append(exp, e.String())
	}
	if err := nextExpected(name, exp, input.String()); err != nil {
		return nil, err
	}
	m.ExpHeadObjectInput = m.ExpHeadObjectInput[1:]

	if len(m.QueuedHeadObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}
	result := m.QueuedHeadObjectOutput[0]
	m.QueuedHeadObjectOutput = m.QueuedHeadObjectOutput[1:]

	if result == nil {
		return nil, awserr.New("NotFound", ErrReturningError+name, nil)
	}
	return result, nil
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "GetObject"
	exp := []string{}
	for _, e := range m.ExpGetObjectInput {
		exp = append(exp, e.String())
	}
	if err := nextExpected(name, exp, input.String()); err != nil {
		return nil, err
	}
	m.ExpGetObjectInput = m.ExpGetObjectInput[1:]

	if len(m.QueuedGetObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}
	result := m.QueuedGetObjectOutput[0]
	m.QueuedGetObjectOutput = m.QueuedGetObjectOutput[1:]

	if result == nil {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, ErrReturningError+name, nil)
	}
	return result, nil
}

func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"
	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expItem := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	// Check it matches the top one
	if *input.Bucket != *expItem.Bucket {
		return nil, fmt.Errorf("%v %v - bucket\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput, name, *expItem.Bucket, *input.Bucket)
	}

	if *input.Key != *expItem.Key {
		return nil, fmt.Errorf("%v %v - key\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput, name, *expItem.Key, *input.Key)
	}

	inpBody, err := readBody(input.Body)
	if err != nil {
		return nil, err
	}
	m.ReceivedPutBodies = append(m.ReceivedPutBodies, inpBody)

	if !m.skipPutCheck(*input.Key) {
		expBody, err := readBody(expItem.Body)
		if err != nil {
			return nil, err
		}

		if !bytes.Equal(inpBody, expBody) {
			return nil, fmt.Errorf("%v %v - body\nexpected %v bytes, S3 recvd %v bytes", ErrWrongInput, name, len(expBody), len(inpBody))
		}
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}
	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}

func (m *MockS3Client) SkipPutChecks(paths []string) {
	m.SkipPutCheckNames = paths
}

func (m *MockS3Client) skipPutCheck(key string) bool {
	for _, p := range m.SkipPutCheckNames {
		if p == key {
			return true
		}
	}
	return false
}

func readBody(r io.ReadSeeker) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	return io.ReadAll(r)
}
