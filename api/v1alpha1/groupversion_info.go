/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1alpha1 contains the KafkaTopic CRD type and its API group
// registration.
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const GroupName = "kafka-topic-operator.deckhouse.io"

// GroupVersion is the API group and version used to register these types.
var GroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
var SchemeBuilder = &schemeBuilder{}

// AddToScheme adds the types in this group-version to the given scheme.
var AddToScheme = SchemeBuilder.addToScheme

type schemeBuilder struct{}

func (schemeBuilder) addToScheme(scheme *runtime.Scheme) error {
	scheme.AddKnownTypes(GroupVersion, &KafkaTopic{}, &KafkaTopicList{})
	metav1.AddToGroupVersion(scheme, GroupVersion)
	return nil
}
