package main

// @generated from pod_test.go

//go:generate go run scripts/gen_pod_expects.go -- pod_test.go pod_expects_test.go

import "time"

func withPodOptions(opts ...PodOption) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withOptions(opts...)
	}
}

func withPodInput(input string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withInput(input)
	}
}

func withPodNamedInput(name string, input string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withNamedInput(name, input)
	}
}

func withPodTimeout(timeout time.Duration) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withTimeout(timeout)
	}
}

func withPodSpaceQuota(capacity int) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withSpaceQuota(capacity)
	}
}

func withPodTimeQuota(fuel int) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.withTimeQuota(fuel)
	}
}

func expectPodError(err error) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectError(err)
	}
}

func expectPodOutput(output string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectOutput(output)
	}
}

func expectPodBinding(key string, value string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectBinding(key, value)
	}
}

func expectPodNoBinding(key string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectNoBinding(key)
	}
}

func expectPodLive(count int) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectLive(count)
	}
}

func expectPodDump(dump string) func(podTestCase) podTestCase {
	return func(pt podTestCase) podTestCase {
		return pt.expectDump(dump)
	}
}
